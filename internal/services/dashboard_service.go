package services

import (
	"sort"

	"github.com/dagmara-szproch/animal-farm/internal/models"
	repo "github.com/dagmara-szproch/animal-farm/internal/repository"
)

const recentDonations = 10

type AnimalStat struct {
	AnimalID   string `json:"animal_id"`
	AnimalName string `json:"animal_name"`
	Count      int    `json:"donation_count"`
	TotalPence int64  `json:"total_pence"`
}

type Dashboard struct {
	Recent      []models.Donation `json:"recent_donations"`
	TotalPence  int64             `json:"total_pence"`
	Count       int               `json:"total_donations"`
	AnimalStats []AnimalStat      `json:"animal_stats"`
}

type DashboardService struct {
	don repo.Donations
}

func NewDashboardService(don repo.Donations) *DashboardService {
	return &DashboardService{don: don}
}

// ForUser aggregates the user's succeeded donations: overall totals,
// the ten most recent, and per-animal counts and sums sorted by total
// descending. Donations without an animal count toward the totals but
// not the per-animal stats. Equal totals keep first-seen order.
func (s *DashboardService) ForUser(userID string) (Dashboard, error) {
	donations, err := s.don.ListByUser(userID, models.DonationSucceeded)
	if err != nil {
		return Dashboard{}, err
	}

	db := Dashboard{Count: len(donations)}

	idx := make(map[string]int)
	for _, d := range donations {
		db.TotalPence += d.AmountPence
		if d.AnimalID == nil {
			continue
		}
		i, ok := idx[*d.AnimalID]
		if !ok {
			i = len(db.AnimalStats)
			idx[*d.AnimalID] = i
			db.AnimalStats = append(db.AnimalStats, AnimalStat{
				AnimalID:   *d.AnimalID,
				AnimalName: d.AnimalName,
			})
		}
		db.AnimalStats[i].Count++
		db.AnimalStats[i].TotalPence += d.AmountPence
	}

	sort.SliceStable(db.AnimalStats, func(i, j int) bool {
		return db.AnimalStats[i].TotalPence > db.AnimalStats[j].TotalPence
	})

	if len(donations) > recentDonations {
		donations = donations[:recentDonations]
	}
	db.Recent = donations

	return db, nil
}
