package models

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type Dashboard struct {
	TotalNotes        int          `json:"totalNotes"`
	RecentNotes       int          `json:"recentNotes"`
	WeeklyNotes       int          `json:"weeklyNotes"`
	AvgWordsPerNote   float64      `json:"avgWordsPerNote"`
	TotalWords        int          `json:"totalWords"`
	MostProductiveDay string       `json:"mostProductiveDay"`
	WritingStreak     int          `json:"writingStreak"`
	MonthlyActivity   []MonthCount `json:"monthlyActivity"`
	WeeklyActivity    []DayCount   `json:"weeklyActivity"`
}

type Insights struct {
	MostUsedWords   []WordCount `json:"mostUsedWords"`
	WritingPatterns struct {
		PeakWritingHour    int         `json:"peakWritingHour"`
		HourlyDistribution []HourCount `json:"hourlyDistribution"`
	} `json:"writingPatterns"`
	ContentInsights struct {
		TotalWords              int     `json:"totalWords"`
		AvgWordsPerEntry        float64 `json:"avgWordsPerEntry"`
		EntryLengthDistribution struct {
			Short  int `json:"short"`
			Medium int `json:"medium"`
			Long   int `json:"long"`
		} `json:"entryLengthDistribution"`
	} `json:"contentInsights"`
}

// Captcha is a challenge image (a data URL) and the id to answer it with.
type Captcha struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}
