// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"

	"guidepost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCharacter is a permanent character directory entry.
type BuiltInCharacter struct {
	Key           string
	Name          string
	Title         string
	Vision        string
	Weapon        string
	Nation        string
	Rarity        int
	Constellation string
}

// BuiltInCharacters defines the starter character directory. The API never
// writes characters, so this list is the single source for non-scraped rows.
var BuiltInCharacters = []BuiltInCharacter{
	{Key: "amber", Name: "Amber", Title: "Outrider", Vision: "Pyro", Weapon: "Bow", Nation: "Mondstadt", Rarity: 4, Constellation: "Lepus"},
	{Key: "ayaka", Name: "Ayaka", Title: "Frostflake Heron", Vision: "Cryo", Weapon: "Sword", Nation: "Inazuma", Rarity: 5, Constellation: "Grus Nivis"},
	{Key: "barbara", Name: "Barbara", Title: "Shining Idol", Vision: "Hydro", Weapon: "Catalyst", Nation: "Mondstadt", Rarity: 4, Constellation: "Crater"},
	{Key: "diluc", Name: "Diluc", Title: "The Dark Side of Dawn", Vision: "Pyro", Weapon: "Claymore", Nation: "Mondstadt", Rarity: 5, Constellation: "Noctua"},
	{Key: "fischl", Name: "Fischl", Title: "Prinzessin der Verurteilung", Vision: "Electro", Weapon: "Bow", Nation: "Mondstadt", Rarity: 4, Constellation: "Corvus"},
	{Key: "ganyu", Name: "Ganyu", Title: "Plenilune Gaze", Vision: "Cryo", Weapon: "Bow", Nation: "Liyue", Rarity: 5, Constellation: "Sinae Unicornis"},
	{Key: "hutao", Name: "Hu Tao", Title: "Fragrance in Thaw", Vision: "Pyro", Weapon: "Polearm", Nation: "Liyue", Rarity: 5, Constellation: "Papilio Charontis"},
	{Key: "jean", Name: "Jean", Title: "Dandelion Knight", Vision: "Anemo", Weapon: "Sword", Nation: "Mondstadt", Rarity: 5, Constellation: "Leo Minor"},
	{Key: "kaeya", Name: "Kaeya", Title: "Frostwind Sword", Vision: "Cryo", Weapon: "Sword", Nation: "Mondstadt", Rarity: 4, Constellation: "Pavo Ocellus"},
	{Key: "keqing", Name: "Keqing", Title: "Driving Thunder", Vision: "Electro", Weapon: "Sword", Nation: "Liyue", Rarity: 5, Constellation: "Trulla Cementarii"},
	{Key: "klee", Name: "Klee", Title: "Fleeing Sunlight", Vision: "Pyro", Weapon: "Catalyst", Nation: "Mondstadt", Rarity: 5, Constellation: "Trifolium"},
	{Key: "mona", Name: "Mona", Title: "Astral Reflection", Vision: "Hydro", Weapon: "Catalyst", Nation: "Mondstadt", Rarity: 5, Constellation: "Astrolabos"},
	{Key: "ningguang", Name: "Ningguang", Title: "Eclipsing Star", Vision: "Geo", Weapon: "Catalyst", Nation: "Liyue", Rarity: 4, Constellation: "Opus Aequilibrium"},
	{Key: "qiqi", Name: "Qiqi", Title: "Icy Resurrection", Vision: "Cryo", Weapon: "Sword", Nation: "Liyue", Rarity: 5, Constellation: "Pristina Nola"},
	{Key: "razor", Name: "Razor", Title: "Wolf Boy", Vision: "Electro", Weapon: "Claymore", Nation: "Mondstadt", Rarity: 4, Constellation: "Lupus Minor"},
	{Key: "venti", Name: "Venti", Title: "Windborne Bard", Vision: "Anemo", Weapon: "Bow", Nation: "Mondstadt", Rarity: 5, Constellation: "Carmen Dei"},
	{Key: "xiangling", Name: "Xiangling", Title: "Exquisite Delicacy", Vision: "Pyro", Weapon: "Polearm", Nation: "Liyue", Rarity: 4, Constellation: "Trulla"},
	{Key: "xiao", Name: "Xiao", Title: "Vigilant Yaksha", Vision: "Anemo", Weapon: "Polearm", Nation: "Liyue", Rarity: 5, Constellation: "Alatus Nemeseos"},
	{Key: "xingqiu", Name: "Xingqiu", Title: "Juvenile Galant", Vision: "Hydro", Weapon: "Sword", Nation: "Liyue", Rarity: 4, Constellation: "Fabulae Textile"},
	{Key: "zhongli", Name: "Zhongli", Title: "Vago Mundo", Vision: "Geo", Weapon: "Polearm", Nation: "Liyue", Rarity: 5, Constellation: "Lapis Dei"},
}

// Characters upserts the built-in character directory. Reruns update
// existing rows in place, keyed by the character key.
func Characters(db *gorm.DB) error {
	for _, item := range BuiltInCharacters {
		character := models.Character{
			Key:           item.Key,
			Name:          item.Name,
			Title:         item.Title,
			Vision:        item.Vision,
			Weapon:        item.Weapon,
			Nation:        item.Nation,
			Rarity:        item.Rarity,
			Constellation: item.Constellation,
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "title", "vision", "weapon", "nation", "rarity", "constellation"}),
		}).Create(&character).Error; err != nil {
			return fmt.Errorf("seed built-in character %s: %w", item.Key, err)
		}
	}

	return nil
}
