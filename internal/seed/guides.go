package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"guidepost/internal/models"
	"guidepost/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for guide seeding.
type Options struct {
	NumGuides   int
	ShouldClean bool
}

var guideTitleTemplates = []string{
	"%s main DPS build",
	"%s support setup",
	"Budget %s build",
	"%s burst rotation",
	"F2P %s guide",
}

// Guides seeds fake guide submissions across the character directory so a
// development instance has a populated moderation queue and public list.
func Guides(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := db.Unscoped().Where("1 = 1").Delete(&models.Guide{}).Error; err != nil {
			return fmt.Errorf("clean guides: %w", err)
		}
	}

	var characters []models.Character
	if err := db.Find(&characters).Error; err != nil {
		return fmt.Errorf("load characters: %w", err)
	}
	if len(characters) == 0 {
		return fmt.Errorf("no characters to attach guides to; seed characters first")
	}

	statuses := []string{
		models.GuideStatusPending,
		models.GuideStatusApproved,
		models.GuideStatusApproved,
	}

	for i := 0; i < opts.NumGuides; i++ {
		character := characters[rand.Intn(len(characters))]
		guide := models.Guide{
			Username:    fakeUsername(),
			CharacterID: character.ID,
			Title:       fakeTitle(character.Name),
			Description: fakeDescription(),
			Status:      statuses[rand.Intn(len(statuses))],
		}
		if err := db.Create(&guide).Error; err != nil {
			return fmt.Errorf("seed guide %d: %w", i, err)
		}
	}

	return nil
}

func fakeUsername() string {
	name := strings.ToLower(gofakeit.Username())
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
	if len(name) < validation.UsernameMinLen {
		name += "_fan"
	}
	if len(name) > validation.UsernameMaxLen {
		name = name[:validation.UsernameMaxLen]
	}
	return name
}

func fakeTitle(characterName string) string {
	title := fmt.Sprintf(guideTitleTemplates[rand.Intn(len(guideTitleTemplates))], characterName)
	if len(title) > validation.TitleMaxLen {
		title = title[:validation.TitleMaxLen]
	}
	return title
}

func fakeDescription() string {
	desc := gofakeit.Paragraph(1, 2, 8, " ")
	if len(desc) < validation.DescriptionMinLen {
		desc = "Focus on elemental mastery and energy recharge early on."
	}
	if len(desc) > validation.DescriptionMaxLen {
		desc = desc[:validation.DescriptionMaxLen]
	}
	return strings.TrimSpace(desc)
}
