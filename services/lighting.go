package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"case-management-backend/models"

	"gorm.io/gorm"
)

// CostModel selects how annual cost savings are priced.
type CostModel string

const (
	// ModelSimple uses the case's operating schedule and a flat $/kWh rate.
	ModelSimple CostModel = "simple"
	// ModelTiered ignores the operating schedule (24x365) and prices the
	// load with the blended time-of-day utility rate.
	ModelTiered CostModel = "tiered"
)

// Annual hour allocations of the three time-of-day billing tiers.
// They partition the 8760-hour year and are not configurable.
const (
	AnnualHours = 8760.0

	HoursTier1 = 1260.0
	HoursTier2 = 2772.0
	HoursTier3 = 4728.0

	RateTier1 = 0.203
	RateTier2 = 0.098
	RateTier3 = 0.157

	// FlatRatePerKWh is the single rate used by the simple cost model.
	FlatRatePerKWh = 0.13
)

// BlendedAnnualRate folds the three tiers into one annualized $ per kW.
//
// The hour/rate pairing is intentionally crossed: tier-2 hours bill at
// rate 3 and tier-3 hours at rate 2. This replicates the customer-facing
// spreadsheet this calculation was lifted from and is marked DO NOT CHANGE
// until the product owner signs off on correcting it.
func BlendedAnnualRate() float64 {
	w1 := HoursTier1 / AnnualHours
	w2 := HoursTier2 / AnnualHours
	w3 := HoursTier3 / AnnualHours
	return AnnualHours * (w1*RateTier1 + w2*RateTier3 + w3*RateTier2)
}

// ResolveExistingWattage returns the total load of one existing-light
// assignment. Unresolved products contribute zero; when the retrofit
// bypasses the ballast, the ballast draw encoded in the product
// description (a bare number) is added per fixture. Missing or
// non-numeric descriptions contribute nothing.
func ResolveExistingWattage(a models.ExistingLightAssignment, catalog map[uint]models.FixtureType) float64 {
	var base, aux float64
	if a.ProductID != nil {
		if ft, ok := catalog[*a.ProductID]; ok {
			base = ft.Wattage
			if a.BypassBallast {
				if v, err := strconv.ParseFloat(strings.TrimSpace(ft.Description), 64); err == nil {
					aux = v
				}
			}
		}
	}
	return (base + aux) * float64(a.Quantity)
}

// ResolveSuggestedWattage returns the total load of one suggested-light
// assignment; an id missing from the catalog contributes zero.
func ResolveSuggestedWattage(a models.SuggestedLightAssignment, catalog map[uint]models.FixtureType) float64 {
	if a.FixtureTypeID == nil {
		return 0
	}
	ft, ok := catalog[*a.FixtureTypeID]
	if !ok {
		return 0
	}
	return ft.Wattage * float64(a.Quantity)
}

// CaseParams carries the operational inputs of the simple cost model.
type CaseParams struct {
	OperationHoursPerDay float64
	OperationDaysPerYear float64
	FlatRatePerKWh       float64
}

// RoomSavings is the per-room breakdown. Values are kept at full
// precision during aggregation; Rounded() produces the emission form.
type RoomSavings struct {
	RoomID                uint    `json:"roomId"`
	Name                  string  `json:"name"`
	PhotoURL              string  `json:"photoUrl,omitempty"`
	ExistingWattage       float64 `json:"existingWattage"`
	SuggestedWattage      float64 `json:"suggestedWattage"`
	ExistingEnergyKWh     float64 `json:"existingEnergyKWh"`
	SuggestedEnergyKWh    float64 `json:"suggestedEnergyKWh"`
	EnergySavingsKWh      float64 `json:"energySavingsKWh"`
	CostSavings           float64 `json:"costSavings"`
	CostSavingsPerFixture float64 `json:"costSavingsPerFixture"`
	SuggestedLightCount   int     `json:"suggestedLightCount"`
}

// Rounded returns a copy with every monetary/energy figure rounded to two
// decimals. Rounding happens only here, never during accumulation.
func (r RoomSavings) Rounded() RoomSavings {
	r.ExistingWattage = Round2(r.ExistingWattage)
	r.SuggestedWattage = Round2(r.SuggestedWattage)
	r.ExistingEnergyKWh = Round2(r.ExistingEnergyKWh)
	r.SuggestedEnergyKWh = Round2(r.SuggestedEnergyKWh)
	r.EnergySavingsKWh = Round2(r.EnergySavingsKWh)
	r.CostSavings = Round2(r.CostSavings)
	r.CostSavingsPerFixture = Round2(r.CostSavingsPerFixture)
	return r
}

// CaseSummary is the case-level fold of all room savings.
type CaseSummary struct {
	TotalExistingWattage   float64 `json:"totalExistingWattage"`
	TotalSuggestedWattage  float64 `json:"totalSuggestedWattage"`
	TotalExistingEnergyKWh float64 `json:"totalExistingEnergyKWh"`
	TotalEnergySavingsKWh  float64 `json:"totalEnergySavingsKWh"`
	TotalCostSavings       float64 `json:"totalCostSavings"`
	TotalLightCount        int     `json:"totalLightCount"`
}

func (s CaseSummary) Rounded() CaseSummary {
	s.TotalExistingWattage = Round2(s.TotalExistingWattage)
	s.TotalSuggestedWattage = Round2(s.TotalSuggestedWattage)
	s.TotalExistingEnergyKWh = Round2(s.TotalExistingEnergyKWh)
	s.TotalEnergySavingsKWh = Round2(s.TotalEnergySavingsKWh)
	s.TotalCostSavings = Round2(s.TotalCostSavings)
	return s
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoomDisplayName prefers the free-text location over the tag name and
// joins both when present. Falls back to "(Unnamed Room)".
func RoomDisplayName(room models.Room) string {
	parts := make([]string, 0, 2)
	if loc := strings.TrimSpace(room.Location); loc != "" {
		parts = append(parts, loc)
	}
	if room.Tag != nil {
		if tag := strings.TrimSpace(room.Tag.Name); tag != "" {
			parts = append(parts, tag)
		}
	}
	name := strings.Trim(strings.Join(parts, " - "), " -")
	if name == "" {
		return "(Unnamed Room)"
	}
	return name
}

// AggregateRoom computes full-precision savings for a single room.
// Missing catalog rows degrade to zero contribution so a partially
// surveyed room still produces an estimate.
func AggregateRoom(room models.Room, catalog map[uint]models.FixtureType, params CaseParams, model CostModel) RoomSavings {
	out := RoomSavings{
		RoomID: room.ID,
		Name:   RoomDisplayName(room),
	}
	if len(room.Photos) > 0 {
		out.PhotoURL = room.Photos[0].URL
	}

	for _, a := range room.ExistingLights {
		out.ExistingWattage += ResolveExistingWattage(a, catalog)
	}
	for _, a := range room.SuggestedLights {
		out.SuggestedWattage += ResolveSuggestedWattage(a, catalog)
		out.SuggestedLightCount += a.Quantity
	}

	existingKW := out.ExistingWattage / 1000
	suggestedKW := out.SuggestedWattage / 1000

	switch model {
	case ModelSimple:
		hours := params.OperationHoursPerDay * params.OperationDaysPerYear
		out.ExistingEnergyKWh = existingKW * hours
		out.SuggestedEnergyKWh = suggestedKW * hours
		out.EnergySavingsKWh = out.ExistingEnergyKWh - out.SuggestedEnergyKWh
		rate := params.FlatRatePerKWh
		if rate == 0 {
			rate = FlatRatePerKWh
		}
		out.CostSavings = out.EnergySavingsKWh * rate
	default: // tiered: full-day, full-year regardless of operating schedule
		out.ExistingEnergyKWh = existingKW * 24 * 365
		out.SuggestedEnergyKWh = suggestedKW * 24 * 365
		out.EnergySavingsKWh = out.ExistingEnergyKWh - out.SuggestedEnergyKWh
		out.CostSavings = (existingKW - suggestedKW) * BlendedAnnualRate()
	}

	if out.SuggestedLightCount > 0 {
		out.CostSavingsPerFixture = out.CostSavings / float64(out.SuggestedLightCount)
	}

	return out
}

// SummarizeCase folds room savings into case totals with plain sums.
// An empty room set yields a zero summary.
func SummarizeCase(rooms []RoomSavings) CaseSummary {
	var s CaseSummary
	for _, r := range rooms {
		s.TotalExistingWattage += r.ExistingWattage
		s.TotalSuggestedWattage += r.SuggestedWattage
		s.TotalExistingEnergyKWh += r.ExistingEnergyKWh
		s.TotalEnergySavingsKWh += r.EnergySavingsKWh
		s.TotalCostSavings += r.CostSavings
		s.TotalLightCount += r.SuggestedLightCount
	}
	return s
}

// SavingsResult is the response payload of the savings endpoint: per-room
// breakdowns plus case totals, every figure rounded at this boundary.
type SavingsResult struct {
	CaseID    uint          `json:"caseId"`
	CostModel CostModel     `json:"costModel"`
	Rooms     []RoomSavings `json:"rooms"`
	Summary   CaseSummary   `json:"summary"`
}

// SavingsService loads a case graph and runs the savings engine over it.
type SavingsService struct {
	DB *gorm.DB
}

func NewSavingsService(db *gorm.DB) *SavingsService {
	return &SavingsService{DB: db}
}

// Scope is the already-resolved authorization scope; admins see all cases.
type Scope struct {
	UserID uint
	Admin  bool
}

func scopedCases(db *gorm.DB, scope Scope) *gorm.DB {
	q := db.Model(&models.Case{})
	if !scope.Admin {
		q = q.Where("created_by_id = ?", scope.UserID)
	}
	return q
}

// loadCaseGraph fetches the case with its full visit graph, or a distinct
// not-found error.
func (s *SavingsService) loadCaseGraph(caseID uint, scope Scope) (models.Case, error) {
	var kase models.Case
	q := s.DB.
		Preload("Visit.Rooms.Tag").
		Preload("Visit.Rooms.ExistingLights").
		Preload("Visit.Rooms.SuggestedLights").
		Preload("Visit.Rooms.Photos")
	if !scope.Admin {
		q = q.Where("created_by_id = ?", scope.UserID)
	}
	if err := q.First(&kase, caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Case{}, errors.New("case_not_found")
		}
		return models.Case{}, err
	}
	return kase, nil
}

// fixtureCatalog resolves the fixture ids referenced by the visit into a
// lookup map. Ids absent from the catalog are simply absent from the map.
func (s *SavingsService) fixtureCatalog(visit *models.OnSiteVisit) (map[uint]models.FixtureType, error) {
	idSet := map[uint]struct{}{}
	for _, room := range visit.Rooms {
		for _, a := range room.ExistingLights {
			if a.ProductID != nil {
				idSet[*a.ProductID] = struct{}{}
			}
		}
		for _, a := range room.SuggestedLights {
			if a.FixtureTypeID != nil {
				idSet[*a.FixtureTypeID] = struct{}{}
			}
		}
	}

	catalog := make(map[uint]models.FixtureType, len(idSet))
	if len(idSet) == 0 {
		return catalog, nil
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var types []models.FixtureType
	if err := s.DB.Where("id IN ?", ids).Find(&types).Error; err != nil {
		// catalog fetch failure is fatal to the request: no partial report
		return nil, err
	}
	for _, ft := range types {
		catalog[ft.ID] = ft
	}
	return catalog, nil
}

// ComputeCaseSavings runs the savings engine for one case. Totals are
// accumulated at full precision and rounded once for the response.
func (s *SavingsService) ComputeCaseSavings(caseID uint, scope Scope, model CostModel) (SavingsResult, error) {
	kase, err := s.loadCaseGraph(caseID, scope)
	if err != nil {
		return SavingsResult{}, err
	}
	if kase.Visit == nil {
		return SavingsResult{}, errors.New("visit_not_found")
	}

	catalog, err := s.fixtureCatalog(kase.Visit)
	if err != nil {
		return SavingsResult{}, err
	}

	params := CaseParams{
		OperationHoursPerDay: kase.OperationHoursPerDay,
		OperationDaysPerYear: float64(kase.OperationDaysPerYear),
		FlatRatePerKWh:       FlatRatePerKWh,
	}

	raw := make([]RoomSavings, 0, len(kase.Visit.Rooms))
	for _, room := range kase.Visit.Rooms {
		raw = append(raw, AggregateRoom(room, catalog, params, model))
	}
	summary := SummarizeCase(raw)

	result := SavingsResult{
		CaseID:    kase.ID,
		CostModel: model,
		Rooms:     make([]RoomSavings, 0, len(raw)),
		Summary:   summary.Rounded(),
	}
	for _, r := range raw {
		result.Rooms = append(result.Rooms, r.Rounded())
	}
	return result, nil
}
