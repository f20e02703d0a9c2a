package models

import "fmt"

// EnhanceMode selects how the assistant rewrites text.
type EnhanceMode string

const (
	EnhanceGrammar   EnhanceMode = "grammar"
	EnhanceSummarize EnhanceMode = "summarize"
	EnhanceExpand    EnhanceMode = "expand"
)

type NoteStyle string

const (
	StyleInformative NoteStyle = "informative"
	StyleCreative    NoteStyle = "creative"
	StyleTechnical   NoteStyle = "technical"
	StylePersonal    NoteStyle = "personal"
)

type NoteLength string

const (
	LengthShort  NoteLength = "short"
	LengthMedium NoteLength = "medium"
	LengthLong   NoteLength = "long"
)

type EnhanceRequest struct {
	Text string      `json:"text"`
	Mode EnhanceMode `json:"type"`
}

type GenerateRequest struct {
	Topic  string     `json:"topic"`
	Style  NoteStyle  `json:"type"`
	Length NoteLength `json:"length"`
}

func ParseEnhanceMode(s string) (EnhanceMode, error) {
	switch m := EnhanceMode(s); m {
	case "":
		return EnhanceGrammar, nil
	case EnhanceGrammar, EnhanceSummarize, EnhanceExpand:
		return m, nil
	}
	return "", fmt.Errorf("unknown enhancement %q (want grammar, summarize or expand)", s)
}

func ParseNoteStyle(s string) (NoteStyle, error) {
	switch st := NoteStyle(s); st {
	case "":
		return StyleInformative, nil
	case StyleInformative, StyleCreative, StyleTechnical, StylePersonal:
		return st, nil
	}
	return "", fmt.Errorf("unknown note type %q", s)
}

func ParseNoteLength(s string) (NoteLength, error) {
	switch l := NoteLength(s); l {
	case "":
		return LengthMedium, nil
	case LengthShort, LengthMedium, LengthLong:
		return l, nil
	}
	return "", fmt.Errorf("unknown note length %q", s)
}
