package models

import (
	"strconv"
	"strings"
	"time"
)

// Application is one student's interview application. Number (the student
// number) is unique across all applications.
type Application struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Number          string    `json:"number"`
	Grade           string    `json:"grade"`
	Major           string    `json:"major"`
	PhoneNumber     string    `json:"phoneNumber"`
	Email           string    `json:"email"`
	GaokaoMath      int       `json:"gaokaoMath"`
	GaokaoEnglish   int       `json:"gaokaoEnglish"`
	FollowDirection string    `json:"followDirection"`
	GoodAt          string    `json:"goodAt"`
	Reason          string    `json:"reason"`
	Future          string    `json:"future"`
	Experience      string    `json:"experience"`
	OtherLab        string    `json:"otherLab"`
	Value           *string   `json:"value"`
	AdminRemark     string    `json:"adminRemark"`
	BookTime        time.Time `json:"bookTime"`
	CreatedAt       time.Time `json:"createdAt"`
}

// HasScore reports whether an administrator has assigned a score.
func (a *Application) HasScore() bool {
	return a.Value != nil && strings.TrimSpace(*a.Value) != ""
}

// Score parses the stored admin score. ok is false when no score is set or the
// stored value is not an integer.
func (a *Application) Score() (score int, ok bool) {
	if !a.HasScore() {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(*a.Value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ApplicationFilter narrows the admin application list.
type ApplicationFilter struct {
	// Keyword matches a substring of the student number.
	Keyword string
	// Direction matches a substring of the follow direction, case-insensitively.
	Direction string
	// Grade matches exactly.
	Grade string
	// Name matches a substring of the applicant's name.
	Name string
}
