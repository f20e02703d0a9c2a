// Package services wraps the notes API endpoints in typed calls. Every call
// goes through a gateway.Requester, so authorization and error reactions are
// handled there; services only shape requests and unpack responses.
package services
