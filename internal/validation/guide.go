// Package validation enforces structural constraints on untrusted form input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"guidepost/internal/models"
)

const (
	UsernameMinLen    = 4
	UsernameMaxLen    = 20
	CharacterMaxLen   = 100
	TitleMinLen       = 4
	TitleMaxLen       = 30
	DescriptionMinLen = 10
	DescriptionMaxLen = 350
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// GuideInput is the normalized (trimmed) form of a guide submission.
type GuideInput struct {
	Username      string
	CharacterName string
	Title         string
	Description   string
}

// ValidateGuideInput checks every field independently and collects all
// violations so callers can surface them in one round trip. Character
// existence is not checked here; a well-formed but unknown character name is
// a distinct NotFound failure handled by the submission workflow.
func ValidateGuideInput(username, characterName, title, description string) (*GuideInput, models.FieldErrors) {
	fields := models.FieldErrors{}

	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < UsernameMinLen || n > UsernameMaxLen {
		fields["username"] = fmt.Sprintf("must be %d-%d characters", UsernameMinLen, UsernameMaxLen)
	} else if !usernameRegex.MatchString(username) {
		fields["username"] = "may only contain letters, numbers, underscores, and hyphens"
	}

	characterName = strings.TrimSpace(characterName)
	if characterName == "" {
		fields["character_name"] = "is required"
	} else if utf8.RuneCountInString(characterName) > CharacterMaxLen {
		fields["character_name"] = fmt.Sprintf("must be at most %d characters", CharacterMaxLen)
	}

	// Length bounds count characters, not bytes; multibyte titles are
	// everyday input here.
	title = strings.TrimSpace(title)
	if n := utf8.RuneCountInString(title); n < TitleMinLen || n > TitleMaxLen {
		fields["title"] = fmt.Sprintf("must be %d-%d characters", TitleMinLen, TitleMaxLen)
	}

	description = strings.TrimSpace(description)
	if n := utf8.RuneCountInString(description); n < DescriptionMinLen || n > DescriptionMaxLen {
		fields["description"] = fmt.Sprintf("must be %d-%d characters", DescriptionMinLen, DescriptionMaxLen)
	}

	if len(fields) > 0 {
		return nil, fields
	}

	return &GuideInput{
		Username:      username,
		CharacterName: characterName,
		Title:         title,
		Description:   description,
	}, nil
}
