package database

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/charlesng35/kurukshetra/internal/models"
)

// SeedDemoData inserts a small set of sports, fixtures, events and gallery
// images. It does nothing when any sport already exists.
func SeedDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	var count int64
	if err := db.Model(&models.Sport{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(demoSports()).Error; err != nil {
			return err
		}
		if err := tx.Create(demoMatches()).Error; err != nil {
			return err
		}
		if err := tx.Create(demoEvents()).Error; err != nil {
			return err
		}
		return tx.Create(demoGallery()).Error
	})
}

func demoSport(name string, category models.SportCategory, date, venue string, minPlayers int, arrival, fixture, timing string) models.Sport {
	slug := models.Slugify(name)
	return models.Sport{
		Name:            name,
		Title:           name,
		Slug:            slug,
		Type:            models.SportTypeNormal,
		Category:        category,
		Description:     "Annual " + name + " tournament featuring top college teams.",
		Image:           "https://picsum.photos/seed/" + slug + "/600/300",
		Date:            date,
		Venue:           venue,
		RegisterLink:    "https://example.com/register/" + slug,
		MoreDetailsLink: "https://example.com/details/" + slug,
		MinPlayers:      minPlayers,
		ArrivalTime:     arrival,
		Fixture:         fixture,
		GameTiming:      timing,
		EventType:       models.EventTypeOther,
		Status:          models.StatusUpcoming,
	}
}

func demoSports() []models.Sport {
	return []models.Sport{
		demoSport("Football", models.CategoryOutdoor, "October 5, 2025", "Stadium A", 11, "9:30 AM", "Knockout Rounds starting from 10 AM", "10 AM - 4 PM"),
		demoSport("Basketball", models.CategoryIndoor, "October 20, 2025", "Basketball Court", 5, "8:30 AM", "League-style matches", "9 AM - 5 PM"),
		demoSport("Cricket", models.CategoryOutdoor, "October 5, 2025", "Stadium B", 11, "9 AM", "Knockout Matches", "9 AM - 6 PM"),
		demoSport("Chess", models.CategoryIndoor, "October 5, 2025", "Sports Hall 1", 1, "9:30 AM", "Round-robin with best of 3", "10 AM - 3 PM"),
		demoSport("Kabaddi", models.CategoryOutdoor, "November 5, 2025", "Kabaddi Ground", 7, "8:30 AM", "League matches", "9:00 AM - 5:30 PM"),
	}
}

func demoMatches() []models.Match {
	moves := 42
	return []models.Match{
		{
			Sport:  "football",
			Name:   "Team A vs Team B",
			Slug:   "team-a-vs-team-b",
			Teams:  datatypes.NewJSONType(models.MatchTeams{Home: "Team A", Away: "Team B"}),
			Scores: datatypes.NewJSONType(models.Score{Home: 2, Away: 1}),
			Date:   "October 5, 2025",
			Status: models.MatchCompleted,
			Details: datatypes.NewJSONType(models.MatchDetails{
				HomePlayers: []models.PlayerStat{{Name: "John Doe", Goals: 1}, {Name: "Mike Stone", Goals: 1}},
				AwayPlayers: []models.PlayerStat{{Name: "Chris Lane", Goals: 1}},
			}),
		},
		{
			Sport:  "cricket",
			Name:   "Team India vs Team Australia",
			Slug:   "india-vs-australia",
			Teams:  datatypes.NewJSONType(models.MatchTeams{Home: "Team India", Away: "Team Australia"}),
			Scores: datatypes.NewJSONType(models.Score{Home: 285, Away: 280}),
			Date:   "October 5, 2025",
			Status: models.MatchCompleted,
			Details: datatypes.NewJSONType(models.MatchDetails{
				HomePlayers: []models.PlayerStat{{Name: "Virat Kohli", Runs: 85}, {Name: "Rohit Sharma", Runs: 45}},
				AwayPlayers: []models.PlayerStat{{Name: "Steve Smith", Runs: 78}, {Name: "David Warner", Runs: 52}},
			}),
		},
		{
			Sport:   "chess",
			Name:    "Magnus Carlsen vs Hikaru Nakamura",
			Slug:    "game-1",
			Teams:   datatypes.NewJSONType(models.MatchTeams{White: "Magnus Carlsen", Black: "Hikaru Nakamura"}),
			Result:  models.ChessWhiteWins,
			Date:    "October 25, 2025",
			Status:  models.MatchCompleted,
			Moves:   &moves,
			Players: datatypes.JSONSlice[string]{"Magnus Carlsen", "Hikaru Nakamura"},
		},
		{
			Sport:  "kabaddi",
			Name:   "Team Alpha vs Team Beta",
			Slug:   "alpha-vs-beta",
			Teams:  datatypes.NewJSONType(models.MatchTeams{Home: "Team Alpha", Away: "Team Beta"}),
			Scores: datatypes.NewJSONType(models.Score{Home: 35, Away: 28}),
			Date:   "November 5, 2025",
			Status: models.MatchCompleted,
			Details: datatypes.NewJSONType(models.MatchDetails{
				HomePlayers: []models.PlayerStat{{Name: "Rahul Kumar", Points: 8}, {Name: "Amit Singh", Points: 6}},
				AwayPlayers: []models.PlayerStat{{Name: "Arjun Reddy", Points: 7}, {Name: "Kiran Kumar", Points: 5}},
			}),
		},
	}
}

func demoEvents() []models.Event {
	return []models.Event{
		{
			Title:            "Cultural Night",
			Date:             "2025-10-10",
			Venue:            "Main Hall",
			Description:      "A night of music and dance.",
			ImageURL:         "https://picsum.photos/id/1021/600/400",
			RegistrationLink: "https://example.com/register",
			Category:         models.EventCultural,
			Status:           models.StatusUpcoming,
		},
		{
			Title:            "Tech Expo 2025",
			Date:             "2025-11-15",
			Venue:            "Engineering Block",
			Description:      "Showcase of innovative projects and technologies.",
			ImageURL:         "https://picsum.photos/id/1022/600/400",
			RegistrationLink: "https://example.com/register/tech",
			Category:         models.EventTechnology,
			Status:           models.StatusUpcoming,
		},
	}
}

func demoGallery() []models.GalleryImage {
	return []models.GalleryImage{
		{URL: "https://picsum.photos/id/1011/600/400", Caption: "Sports Event"},
		{URL: "https://picsum.photos/id/1012/600/400", Caption: "Cultural Fest"},
		{URL: "https://picsum.photos/id/1013/600/400", Caption: "Tech Expo"},
		{URL: "https://picsum.photos/id/1014/600/400", Caption: "Team Spirit"},
	}
}
