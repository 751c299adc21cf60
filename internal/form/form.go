// Package form validates user-entered media items before they reach the
// catalog. The catalog itself accepts whatever it is given.
package form

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/chronicle/internal/domain"
)

// Input is the editable part of a media item
type Input struct {
	Title       string           `validate:"required"`
	Type        domain.MediaType `validate:"mediatype"`
	Genres      []domain.Genre   `validate:"min=1,dive,genre"`
	Description string
	Rating      float64       `validate:"gte=0,lte=10,halfstep"`
	Status      domain.Status `validate:"status"`
	ImageURL    string        `validate:"omitempty,url"`
}

// FromItem extracts the editable fields of item
func FromItem(item domain.MediaItem) Input {
	return Input{
		Title:       item.Title,
		Type:        item.Type,
		Genres:      append([]domain.Genre(nil), item.Genres...),
		Description: item.Description,
		Rating:      item.Rating,
		Status:      item.Status,
		ImageURL:    item.ImageURL,
	}
}

// Item builds a new, id-less item from the input
func (in Input) Item() domain.MediaItem {
	return domain.MediaItem{
		Title:       strings.TrimSpace(in.Title),
		Type:        in.Type,
		Genres:      append([]domain.Genre{}, in.Genres...),
		Description: in.Description,
		Rating:      in.Rating,
		Status:      in.Status,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}

// Patch builds a patch that overwrites every editable field of an item
func (in Input) Patch() domain.MediaPatch {
	item := in.Item()
	return domain.MediaPatch{
		Title:       &item.Title,
		Type:        &item.Type,
		Genres:      item.Genres,
		Description: &item.Description,
		Rating:      &item.Rating,
		Status:      &item.Status,
		ImageURL:    &item.ImageURL,
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
			v := fl.Field().Float() * 2
			return v == math.Trunc(v)
		})
		validate.RegisterValidation("mediatype", func(fl validator.FieldLevel) bool {
			return domain.MediaType(fl.Field().String()).Valid()
		})
		validate.RegisterValidation("status", func(fl validator.FieldLevel) bool {
			return domain.Status(fl.Field().String()).Valid()
		})
		validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			return domain.Genre(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Validate checks in against the item rules. The returned error wraps
// domain.ErrInvalidItem and lists every failing field.
func Validate(in Input) error {
	return check(in, nil)
}

// ValidatePatch checks the fields patch sets, on the item that would result
// from applying it. Fields the patch leaves alone are not re-checked, so an
// imported item without genres can still be moved on the watchlist.
func ValidatePatch(item domain.MediaItem, patch domain.MediaPatch) error {
	merged := item.Clone()
	patch.ApplyTo(&merged)
	return check(FromItem(merged), patchedFields(patch))
}

// patchedFields names the Input fields a patch sets
func patchedFields(p domain.MediaPatch) map[string]bool {
	return map[string]bool{
		"Title":       p.Title != nil,
		"Type":        p.Type != nil,
		"Genres":      p.Genres != nil,
		"Description": p.Description != nil,
		"Rating":      p.Rating != nil,
		"Status":      p.Status != nil,
		"ImageURL":    p.ImageURL != nil,
	}
}

// check validates in, reporting only fields in only when it is non-nil
func check(in Input, only map[string]bool) error {
	in.Title = strings.TrimSpace(in.Title)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	err := engine().Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	seen := make(map[string]bool)
	for _, fe := range fieldErrs {
		// dive errors are named like "Genres[2]"
		name, _, _ := strings.Cut(fe.StructField(), "[")
		if only != nil && !only[name] {
			continue
		}
		msg := message(fe)
		if !seen[msg] {
			seen[msg] = true
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidItem, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "title is required"
	case "mediatype":
		return fmt.Sprintf("unknown type %q", fe.Value())
	case "status":
		return fmt.Sprintf("unknown status %q", fe.Value())
	case "min":
		return "select at least one genre"
	case "genre":
		return fmt.Sprintf("unknown genre %q", fe.Value())
	case "gte", "lte":
		return "rating must be between 0 and 10"
	case "halfstep":
		return "rating must be in steps of 0.5"
	case "url":
		return "image URL must be a valid URL"
	}
	return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
}
