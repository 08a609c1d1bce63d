package promoting

import (
	"strconv"
	"strings"
	"time"

	"github.com/vinodrajapaksha/ttms-api/internal/daterange"
	"github.com/vinodrajapaksha/ttms-api/internal/domain"
)

// buildPromotion validates a staff form and turns it into the body sent to the
// backend. today is only enforced when creating.
func buildPromotion(input domain.PromotionInput, today *time.Time) (*domain.Promotion, error) {
	verr := &ValidationError{}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		verr.add("title", "title is required")
	}

	start, startErr := requiredDate(verr, "startDate", input.StartDate)
	end, endErr := requiredDate(verr, "endDate", input.EndDate)
	if startErr == nil && endErr == nil {
		if daterange.CompareDays(start, end) > 0 {
			verr.add("endDate", "end date must be on or after the start date")
		}
		if today != nil && daterange.CompareDays(start, *today) < 0 {
			verr.add("startDate", "start date cannot be in the past")
		}
	}

	for field, value := range map[string]string{"price": input.Price, "originalPrice": input.OriginalPrice} {
		if v := strings.TrimSpace(value); v != "" {
			if amount, err := strconv.ParseFloat(v, 64); err != nil || amount < 0 {
				verr.add(field, "must be a non-negative amount")
			}
		}
	}

	if t := strings.TrimSpace(input.Time); t != "" {
		if _, err := time.Parse("15:04", t); err != nil {
			if _, err := time.Parse("15:04:05", t); err != nil {
				verr.add("time", "time must be HH:MM")
			}
		}
	}

	if input.MaxParticipants != nil && *input.MaxParticipants < 1 {
		verr.add("maxParticipants", "must be at least 1")
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	return &domain.Promotion{
		Title:           title,
		StartDate:       daterange.FormatISO(start),
		EndDate:         daterange.FormatISO(end),
		IsActive:        isActive,
		Color:           domain.ParseColor(input.Color),
		Description:     strings.TrimSpace(input.Description),
		Time:            strings.TrimSpace(input.Time),
		Price:           strings.TrimSpace(input.Price),
		OriginalPrice:   strings.TrimSpace(input.OriginalPrice),
		Discount:        strings.TrimSpace(input.Discount),
		Duration:        strings.TrimSpace(input.Duration),
		MaxParticipants: input.MaxParticipants,
		PromotionType:   input.PromotionType,
		Terms:           strings.TrimSpace(input.Terms),
	}, nil
}

func requiredDate(verr *ValidationError, field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, "date is required")
		return time.Time{}, daterange.ErrInvalidDateFormat
	}
	t, err := daterange.ParseDate(value)
	if err != nil {
		verr.add(field, "date must be YYYY-MM-DD")
		return time.Time{}, err
	}
	return t, nil
}
