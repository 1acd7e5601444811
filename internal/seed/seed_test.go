package seed

import (
	"testing"

	"guidepost/internal/database"
	"guidepost/internal/models"
	"guidepost/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCharactersSeedIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Characters(db))
	var first int64
	require.NoError(t, db.Model(&models.Character{}).Count(&first).Error)
	assert.Equal(t, int64(len(BuiltInCharacters)), first)

	// Rerunning must update in place, not duplicate.
	require.NoError(t, Characters(db))
	var second int64
	require.NoError(t, db.Model(&models.Character{}).Count(&second).Error)
	assert.Equal(t, first, second)
}

func TestCharactersSeedUpdatesExistingRows(t *testing.T) {
	db := setupSeedDB(t)
	require.NoError(t, db.Create(&models.Character{Key: "ayaka", Name: "Renamed"}).Error)

	require.NoError(t, Characters(db))

	var character models.Character
	require.NoError(t, db.Where("key = ?", "ayaka").First(&character).Error)
	assert.Equal(t, "Ayaka", character.Name)
}

func TestGuidesSeedProducesValidRows(t *testing.T) {
	db := setupSeedDB(t)
	require.NoError(t, Characters(db))

	require.NoError(t, Guides(db, Options{NumGuides: 25}))

	var guides []models.Guide
	require.NoError(t, db.Find(&guides).Error)
	require.Len(t, guides, 25)

	for _, g := range guides {
		_, fieldErrs := validation.ValidateGuideInput(g.Username, "placeholder", g.Title, g.Description)
		assert.Emptyf(t, fieldErrs, "seeded guide %d has invalid fields: %v", g.ID, fieldErrs)
		assert.NotZero(t, g.CharacterID)
		assert.Contains(t, []string{models.GuideStatusPending, models.GuideStatusApproved}, g.Status)
	}
}

func TestGuidesSeedRequiresCharacters(t *testing.T) {
	db := setupSeedDB(t)
	assert.Error(t, Guides(db, Options{NumGuides: 5}))
}

func TestGuidesSeedClean(t *testing.T) {
	db := setupSeedDB(t)
	require.NoError(t, Characters(db))
	require.NoError(t, Guides(db, Options{NumGuides: 5}))

	require.NoError(t, Guides(db, Options{NumGuides: 3, ShouldClean: true}))
	var count int64
	require.NoError(t, db.Model(&models.Guide{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
