package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// PlaceholderPoster is shown when a movie has no poster URL
const PlaceholderPoster = "https://via.placeholder.com/300x450/1a1a25/6366f1?text=No+Poster"

// Movie is a single catalog record. Records are immutable once loaded;
// zero values mean the field is absent.
type Movie struct {
	ID            int      `json:"id" yaml:"id" validate:"gt=0"`
	Title         string   `json:"title" yaml:"title" validate:"required"`
	Year          int      `json:"year,omitempty" yaml:"year,omitempty" validate:"omitempty,gte=1870,lte=2100"`
	Language      string   `json:"language,omitempty" yaml:"language,omitempty"`
	Industry      string   `json:"industry,omitempty" yaml:"industry,omitempty"`
	Rating        float64  `json:"rating,omitempty" yaml:"rating,omitempty" validate:"gte=0,lte=10"`
	Genres        []string `json:"genres,omitempty" yaml:"genres,omitempty" validate:"dive,required"`
	Director      string   `json:"director,omitempty" yaml:"director,omitempty"`
	Actors        []string `json:"actors,omitempty" yaml:"actors,omitempty" validate:"dive,required"`
	MusicDirector string   `json:"musicDirector,omitempty" yaml:"musicDirector,omitempty"`
	Summary       string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Poster        string   `json:"poster,omitempty" yaml:"poster,omitempty" validate:"omitempty,url"`
	TrailerURL    string   `json:"trailerUrl,omitempty" yaml:"trailerUrl,omitempty" validate:"omitempty,url"`
}

// RatingClass buckets a rating for color coding
type RatingClass int

const (
	RatingBelow RatingClass = iota
	RatingAverage
	RatingGood
	RatingExcellent
)

// String returns the class name
func (c RatingClass) String() string {
	switch c {
	case RatingExcellent:
		return "excellent"
	case RatingGood:
		return "good"
	case RatingAverage:
		return "average"
	default:
		return "below"
	}
}

// RatingClass returns the color bucket for the movie's rating
func (m Movie) RatingClass() RatingClass {
	switch {
	case m.Rating >= 8.0:
		return RatingExcellent
	case m.Rating >= 7.0:
		return RatingGood
	case m.Rating >= 6.0:
		return RatingAverage
	default:
		return RatingBelow
	}
}

// DisplayRating returns the rating or "N/A" when absent
func (m Movie) DisplayRating() string {
	if m.Rating <= 0 {
		return "N/A"
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", m.Rating), ".0")
}

// DisplayYear returns the year or "N/A" when absent
func (m Movie) DisplayYear() string {
	if m.Year <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", m.Year)
}

// DisplayLanguage returns the language or "Unknown"
func (m Movie) DisplayLanguage() string {
	if m.Language == "" {
		return "Unknown"
	}
	return m.Language
}

// DisplayIndustry returns the industry label or "Cinema"
func (m Movie) DisplayIndustry() string {
	if m.Industry == "" {
		return "Cinema"
	}
	return m.Industry
}

// DisplayDirector returns the director or "Unknown"
func (m Movie) DisplayDirector() string {
	if m.Director == "" {
		return "Unknown"
	}
	return m.Director
}

// DisplayMusicDirector returns the music director or "Unknown"
func (m Movie) DisplayMusicDirector() string {
	if m.MusicDirector == "" {
		return "Unknown"
	}
	return m.MusicDirector
}

// DisplayCast joins the actor list for the detail view
func (m Movie) DisplayCast() string {
	if len(m.Actors) == 0 {
		return "Cast information unavailable"
	}
	return strings.Join(m.Actors, ", ")
}

// LeadActors returns at most n actors for compact rows
func (m Movie) LeadActors(n int) []string {
	if n >= len(m.Actors) {
		return m.Actors
	}
	return m.Actors[:n]
}

// DisplaySummary returns the summary or a stock description
func (m Movie) DisplaySummary() string {
	if m.Summary == "" {
		return "No description available."
	}
	return m.Summary
}

// PosterURL returns the poster or the placeholder image
func (m Movie) PosterURL() string {
	if m.Poster == "" {
		return PlaceholderPoster
	}
	return m.Poster
}

// FallbackPosterURL returns a placeholder image labelled with the title
func (m Movie) FallbackPosterURL() string {
	label := m.Title
	if label == "" {
		label = "Movie"
	}
	return "https://via.placeholder.com/300x450/1a1a25/6366f1?text=" + url.QueryEscape(label)
}

// HasTrailer reports whether a trailer link is available
func (m Movie) HasTrailer() bool {
	return m.TrailerURL != ""
}

// PrimaryGenre returns the first genre, or "" when none
func (m Movie) PrimaryGenre() string {
	if len(m.Genres) == 0 {
		return ""
	}
	return m.Genres[0]
}

// Capitalize upper-cases the first letter of s, leaving the rest untouched
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
