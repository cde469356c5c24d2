package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/americanadages/adages-society/internal/domain"
)

// Seed is the full dataset an in-memory store is built from.
type Seed struct {
	Users       []SeedUser       `json:"users"`
	Items       []SeedItem       `json:"items"`
	Votes       []SeedVote       `json:"votes"`
	Challenges  []SeedChallenge  `json:"challenges"`
	Citations   []SeedCitation   `json:"citations"`
	Friendships []SeedFriendship `json:"friendships"`
}

type SeedUser struct {
	domain.Profile
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type SeedItem struct {
	ID         string                 `json:"id"`
	Category   domain.ContentCategory `json:"category"`
	AuthorID   string                 `json:"author_id"`
	Text       string                 `json:"text"`
	Definition string                 `json:"definition,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	HiddenAt   *time.Time             `json:"hidden_at,omitempty"`
	DeletedAt  *time.Time             `json:"deleted_at,omitempty"`
}

type SeedVote struct {
	VoterID    string                 `json:"voter_id"`
	TargetType domain.ContentCategory `json:"target_type"`
	TargetID   string                 `json:"target_id"`
	Value      int                    `json:"value"`
}

type SeedChallenge struct {
	ID           string                 `json:"id"`
	ChallengerID string                 `json:"challenger_id"`
	TargetType   domain.ContentCategory `json:"target_type"`
	TargetID     string                 `json:"target_id"`
	Status       domain.ReportStatus    `json:"status"`
	DeletedAt    *time.Time             `json:"deleted_at,omitempty"`
}

type SeedCitation struct {
	ID          string     `json:"id"`
	SubmittedBy string     `json:"submitted_by"`
	AdageID     string     `json:"adage_id"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

type SeedFriendship struct {
	RequesterID string `json:"requester_id"`
	AddresseeID string `json:"addressee_id"`
	Accepted    bool   `json:"accepted"`
}

// LoadSeedFile reads a JSON seed from disk.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("reading seed file: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("decoding seed file: %w", err)
	}

	if err := seed.Validate(); err != nil {
		return Seed{}, fmt.Errorf("validating seed file: %w", err)
	}

	return seed, nil
}

// Validate checks the references and enumerations in the seed.
func (s Seed) Validate() error {
	users := make(map[string]struct{}, len(s.Users))
	for _, u := range s.Users {
		if u.ID == "" {
			return fmt.Errorf("user with empty id")
		}
		users[u.ID] = struct{}{}
	}

	for _, item := range s.Items {
		if !item.Category.Valid() {
			return fmt.Errorf("item [%s] has unknown category [%s]", item.ID, item.Category)
		}
		if _, ok := users[item.AuthorID]; !ok {
			return fmt.Errorf("item [%s] references unknown author [%s]", item.ID, item.AuthorID)
		}
	}

	for _, v := range s.Votes {
		if v.Value != 1 && v.Value != -1 {
			return fmt.Errorf("vote on [%s] has invalid value [%d]", v.TargetID, v.Value)
		}
		if !v.TargetType.Valid() {
			return fmt.Errorf("vote on [%s] has unknown target type [%s]", v.TargetID, v.TargetType)
		}
	}

	for _, c := range s.Challenges {
		switch c.Status {
		case domain.ReportStatusPending, domain.ReportStatusReviewed,
			domain.ReportStatusAccepted, domain.ReportStatusRejected:
		default:
			return fmt.Errorf("challenge [%s] has unknown status [%s]", c.ID, c.Status)
		}
	}

	return nil
}

// DefaultSeed is a small demonstration dataset used when no backend is configured.
func DefaultSeed() Seed {
	founded := time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	editorID := uuid.NewString()
	memberID := uuid.NewString()
	earlyBirdID := uuid.NewString()
	stitchID := uuid.NewString()

	return Seed{
		Users: []SeedUser{
			{Profile: domain.Profile{
				ID:          editorID,
				Username:    "editor",
				DisplayName: "Society Editor",
				Email:       "editor@americanadages.org",
				Bio:         "Keeper of the collection since " + founded.Format("2006") + ".",
				Role:        "admin",
				CreatedAt:   created,
			}},
			{Profile: domain.Profile{
				ID:          memberID,
				Username:    "member",
				DisplayName: "Society Member",
				Email:       "member@americanadages.org",
				Role:        "member",
				CreatedAt:   created,
			}},
		},
		Items: []SeedItem{
			{
				ID:         earlyBirdID,
				Category:   domain.CategoryAdage,
				AuthorID:   editorID,
				Text:       "The early bird catches the worm.",
				Definition: "Those who act promptly gain the advantage.",
				CreatedAt:  created,
			},
			{
				ID:         stitchID,
				Category:   domain.CategoryAdage,
				AuthorID:   editorID,
				Text:       "A stitch in time saves nine.",
				Definition: "Fixing a problem early prevents more work later.",
				CreatedAt:  created.Add(time.Hour),
			},
		},
		Votes: []SeedVote{
			{VoterID: memberID, TargetType: domain.CategoryAdage, TargetID: earlyBirdID, Value: 1},
			{VoterID: memberID, TargetType: domain.CategoryAdage, TargetID: stitchID, Value: 1},
		},
		Friendships: []SeedFriendship{
			{RequesterID: memberID, AddresseeID: editorID, Accepted: true},
		},
	}
}
