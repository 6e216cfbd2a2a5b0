package dto

import (
	"strings"
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
)

// ApplicationRequest is the body used to submit, create or update an application.
type ApplicationRequest struct {
	Name            string     `json:"name" binding:"max=50" example:"Li Hua"`
	Number          string     `json:"number" binding:"required,max=20,studentnumber" example:"2025001"`
	Grade           string     `json:"grade" binding:"required,max=20" example:"2025"`
	Major           string     `json:"major" binding:"max=100" example:"Computer Science"`
	PhoneNumber     string     `json:"phoneNumber" binding:"required,max=20" example:"13800000000"`
	Email           string     `json:"email" binding:"omitempty,email,max=100" example:"lihua@example.com"`
	GaokaoMath      *int       `json:"gaokaoMath" binding:"required,min=0,max=150" example:"128"`
	GaokaoEnglish   *int       `json:"gaokaoEnglish" binding:"required,min=0,max=150" example:"121"`
	FollowDirection string     `json:"followDirection" binding:"required,max=100" example:"backend"`
	GoodAt          string     `json:"goodAt" binding:"max=200"`
	Reason          string     `json:"reason"`
	Future          string     `json:"future"`
	Experience      string     `json:"experience"`
	OtherLab        string     `json:"otherLab" binding:"max=100"`
	BookTime        *time.Time `json:"bookTime"`
}

// ToModel converts the request into an application record.
func (r *ApplicationRequest) ToModel() *models.Application {
	app := &models.Application{
		Name:            strings.TrimSpace(r.Name),
		Number:          strings.TrimSpace(r.Number),
		Grade:           strings.TrimSpace(r.Grade),
		Major:           strings.TrimSpace(r.Major),
		PhoneNumber:     strings.TrimSpace(r.PhoneNumber),
		Email:           strings.TrimSpace(r.Email),
		FollowDirection: strings.TrimSpace(r.FollowDirection),
		GoodAt:          r.GoodAt,
		Reason:          r.Reason,
		Future:          r.Future,
		Experience:      r.Experience,
		OtherLab:        r.OtherLab,
	}
	if r.GaokaoMath != nil {
		app.GaokaoMath = *r.GaokaoMath
	}
	if r.GaokaoEnglish != nil {
		app.GaokaoEnglish = *r.GaokaoEnglish
	}
	if r.BookTime != nil {
		app.BookTime = *r.BookTime
	}
	return app
}

// ScoreRequest assigns the admin score.
type ScoreRequest struct {
	Score string `json:"score" binding:"required,numeric" example:"90"`
}

// RemarkRequest sets the admin remark.
type RemarkRequest struct {
	Remark string `json:"remark" binding:"max=500" example:"strong fundamentals"`
}

// ResultQueryRequest looks up a result by student number.
type ResultQueryRequest struct {
	Number string `json:"number" binding:"required,max=20" example:"2025001"`
}

// ResultGateResponse reports whether results are currently visible.
type ResultGateResponse struct {
	Released bool `json:"released" example:"false"`
}
