package services

import (
	"math"
	"reflect"
	"testing"

	"case-management-backend/models"
)

func uintPtr(v uint) *uint { return &v }

func testCatalog() map[uint]models.FixtureType {
	return map[uint]models.FixtureType{
		1: {ID: 1, Name: "T8 2-lamp", Wattage: 32, Description: "10"},
		2: {ID: 2, Name: "T12 4-lamp", Wattage: 112, Description: "Magnetic ballast"},
		3: {ID: 3, Name: "LED Tube", Wattage: 18},
	}
}

// TestBlendedAnnualRate verifies the weighted form reduces to the plain
// hour-weighted sum, including the legacy tier-2/tier-3 rate crossing.
func TestBlendedAnnualRate(t *testing.T) {
	got := BlendedAnnualRate()
	want := HoursTier1*RateTier1 + HoursTier2*RateTier3 + HoursTier3*RateTier2

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("BlendedAnnualRate() = %v, want %v", got, want)
	}
	// sanity against the reference constants: 1260*0.203 + 2772*0.157 + 4728*0.098
	if math.Abs(got-1154.328) > 1e-6 {
		t.Errorf("BlendedAnnualRate() = %v, want 1154.328", got)
	}
}

// TestResolveExistingWattageBypass checks the ballast draw parsed from the
// description is added per fixture when the retrofit bypasses the ballast.
func TestResolveExistingWattageBypass(t *testing.T) {
	a := models.ExistingLightAssignment{ProductID: uintPtr(1), Quantity: 4, BypassBallast: true}

	got := ResolveExistingWattage(a, testCatalog())
	if got != 168 {
		t.Errorf("Expected (32+10)*4 = 168, got %v", got)
	}
}

// TestResolveExistingWattageDegradesToZero covers the best-effort policy:
// unresolved products and non-numeric descriptions never error.
func TestResolveExistingWattageDegradesToZero(t *testing.T) {
	catalog := testCatalog()

	noBypass := models.ExistingLightAssignment{ProductID: uintPtr(1), Quantity: 4}
	if got := ResolveExistingWattage(noBypass, catalog); got != 128 {
		t.Errorf("Expected 32*4 = 128 without bypass, got %v", got)
	}

	textDesc := models.ExistingLightAssignment{ProductID: uintPtr(2), Quantity: 2, BypassBallast: true}
	if got := ResolveExistingWattage(textDesc, catalog); got != 224 {
		t.Errorf("Expected non-numeric description to add nothing (112*2 = 224), got %v", got)
	}

	unresolved := models.ExistingLightAssignment{ProductID: uintPtr(99), Quantity: 3, BypassBallast: true}
	if got := ResolveExistingWattage(unresolved, catalog); got != 0 {
		t.Errorf("Expected unresolved product to contribute 0, got %v", got)
	}

	nilProduct := models.ExistingLightAssignment{Quantity: 3}
	if got := ResolveExistingWattage(nilProduct, catalog); got != 0 {
		t.Errorf("Expected nil product id to contribute 0, got %v", got)
	}
}

// TestResolveSuggestedWattage checks lookup and the missing-id fallback.
func TestResolveSuggestedWattage(t *testing.T) {
	catalog := testCatalog()

	known := models.SuggestedLightAssignment{FixtureTypeID: uintPtr(3), Quantity: 6}
	if got := ResolveSuggestedWattage(known, catalog); got != 108 {
		t.Errorf("Expected 18*6 = 108, got %v", got)
	}

	unknown := models.SuggestedLightAssignment{FixtureTypeID: uintPtr(42), Quantity: 6}
	if got := ResolveSuggestedWattage(unknown, catalog); got != 0 {
		t.Errorf("Expected unknown fixture id to contribute 0, got %v", got)
	}
}

func testRoom() models.Room {
	return models.Room{
		ID:       7,
		Location: "2nd floor east wing",
		ExistingLights: []models.ExistingLightAssignment{
			{ProductID: uintPtr(1), Quantity: 10, BypassBallast: true}, // (32+10)*10 = 420
			{ProductID: uintPtr(2), Quantity: 5},                      // 112*5 = 560
		},
		SuggestedLights: []models.SuggestedLightAssignment{
			{FixtureTypeID: uintPtr(3), Quantity: 15}, // 18*15 = 270
		},
	}
}

// TestAggregateRoomTiered checks the tiered model ignores the operating
// schedule and prices the load delta with the blended annual rate.
func TestAggregateRoomTiered(t *testing.T) {
	params := CaseParams{OperationHoursPerDay: 10, OperationDaysPerYear: 250}
	got := AggregateRoom(testRoom(), testCatalog(), params, ModelTiered)

	if got.ExistingWattage != 980 {
		t.Errorf("ExistingWattage = %v, want 980", got.ExistingWattage)
	}
	if got.SuggestedWattage != 270 {
		t.Errorf("SuggestedWattage = %v, want 270", got.SuggestedWattage)
	}

	wantExistingEnergy := 0.980 * 24 * 365
	if math.Abs(got.ExistingEnergyKWh-wantExistingEnergy) > 1e-9 {
		t.Errorf("ExistingEnergyKWh = %v, want %v (schedule must be ignored)", got.ExistingEnergyKWh, wantExistingEnergy)
	}

	wantCost := (0.980 - 0.270) * BlendedAnnualRate()
	if math.Abs(got.CostSavings-wantCost) > 1e-9 {
		t.Errorf("CostSavings = %v, want %v", got.CostSavings, wantCost)
	}

	wantPerFixture := wantCost / 15
	if math.Abs(got.CostSavingsPerFixture-wantPerFixture) > 1e-9 {
		t.Errorf("CostSavingsPerFixture = %v, want %v", got.CostSavingsPerFixture, wantPerFixture)
	}
}

// TestAggregateRoomSimple checks the simple model respects the case's
// operating schedule and flat rate.
func TestAggregateRoomSimple(t *testing.T) {
	params := CaseParams{OperationHoursPerDay: 10, OperationDaysPerYear: 250, FlatRatePerKWh: 0.13}
	got := AggregateRoom(testRoom(), testCatalog(), params, ModelSimple)

	wantExistingEnergy := 0.980 * 10 * 250
	if math.Abs(got.ExistingEnergyKWh-wantExistingEnergy) > 1e-9 {
		t.Errorf("ExistingEnergyKWh = %v, want %v", got.ExistingEnergyKWh, wantExistingEnergy)
	}

	wantSavings := (0.980 - 0.270) * 10 * 250
	if math.Abs(got.EnergySavingsKWh-wantSavings) > 1e-9 {
		t.Errorf("EnergySavingsKWh = %v, want %v", got.EnergySavingsKWh, wantSavings)
	}

	wantCost := wantSavings * 0.13
	if math.Abs(got.CostSavings-wantCost) > 1e-9 {
		t.Errorf("CostSavings = %v, want %v", got.CostSavings, wantCost)
	}
}

// TestCostSavingsPerFixtureGuard: no suggested fixtures means a zero
// per-fixture figure, never NaN or a panic.
func TestCostSavingsPerFixtureGuard(t *testing.T) {
	room := testRoom()
	room.SuggestedLights = nil

	got := AggregateRoom(room, testCatalog(), CaseParams{}, ModelTiered)

	if got.CostSavingsPerFixture != 0 {
		t.Errorf("CostSavingsPerFixture = %v, want 0", got.CostSavingsPerFixture)
	}
	if math.IsNaN(got.CostSavingsPerFixture) {
		t.Error("CostSavingsPerFixture must not be NaN")
	}
}

// TestAggregateRoomEmpty: a room with no lights yields all-zero savings.
func TestAggregateRoomEmpty(t *testing.T) {
	got := AggregateRoom(models.Room{ID: 1}, testCatalog(), CaseParams{}, ModelTiered)

	if got.ExistingWattage != 0 || got.SuggestedWattage != 0 ||
		got.EnergySavingsKWh != 0 || got.CostSavings != 0 || got.CostSavingsPerFixture != 0 {
		t.Errorf("Expected all-zero savings for empty room, got %+v", got)
	}
	if got.Name != "(Unnamed Room)" {
		t.Errorf("Name = %q, want \"(Unnamed Room)\"", got.Name)
	}
}

// TestNegativeSavingsPreserved: a suggested configuration drawing more
// than the existing one produces negative savings, not a clamped zero.
func TestNegativeSavingsPreserved(t *testing.T) {
	room := models.Room{
		ExistingLights:  []models.ExistingLightAssignment{{ProductID: uintPtr(3), Quantity: 1}}, // 18W
		SuggestedLights: []models.SuggestedLightAssignment{{FixtureTypeID: uintPtr(2), Quantity: 1}}, // 112W
	}

	got := AggregateRoom(room, testCatalog(), CaseParams{}, ModelTiered)
	if got.CostSavings >= 0 {
		t.Errorf("Expected negative cost savings, got %v", got.CostSavings)
	}
	if got.EnergySavingsKWh >= 0 {
		t.Errorf("Expected negative energy savings, got %v", got.EnergySavingsKWh)
	}
}

// TestAggregateRoomIdempotent: same input, same output, no hidden state.
func TestAggregateRoomIdempotent(t *testing.T) {
	params := CaseParams{OperationHoursPerDay: 8, OperationDaysPerYear: 200}

	first := AggregateRoom(testRoom(), testCatalog(), params, ModelTiered)
	second := AggregateRoom(testRoom(), testCatalog(), params, ModelTiered)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregation is not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

// TestSummarizeCaseExactSums: case totals equal the plain sum of the
// full-precision room figures, and the light count adds up.
func TestSummarizeCaseExactSums(t *testing.T) {
	catalog := testCatalog()
	params := CaseParams{OperationHoursPerDay: 9, OperationDaysPerYear: 190}

	roomA := AggregateRoom(testRoom(), catalog, params, ModelTiered)
	roomB := testRoom()
	roomB.ID = 8
	roomB.SuggestedLights[0].Quantity = 7
	savingsB := AggregateRoom(roomB, catalog, params, ModelTiered)

	summary := SummarizeCase([]RoomSavings{roomA, savingsB})

	if summary.TotalExistingWattage != roomA.ExistingWattage+savingsB.ExistingWattage {
		t.Errorf("TotalExistingWattage = %v, want exact sum %v",
			summary.TotalExistingWattage, roomA.ExistingWattage+savingsB.ExistingWattage)
	}
	if summary.TotalCostSavings != roomA.CostSavings+savingsB.CostSavings {
		t.Errorf("TotalCostSavings = %v, want exact sum %v",
			summary.TotalCostSavings, roomA.CostSavings+savingsB.CostSavings)
	}
	if summary.TotalLightCount != 15+7 {
		t.Errorf("TotalLightCount = %d, want 22", summary.TotalLightCount)
	}
}

// TestSummarizeCaseEmpty: an empty room set produces a zero summary.
func TestSummarizeCaseEmpty(t *testing.T) {
	summary := SummarizeCase(nil)
	if summary != (CaseSummary{}) {
		t.Errorf("Expected zero summary for empty input, got %+v", summary)
	}
}

// TestRoundedAtEmission: rounding happens in Rounded(), two decimals.
func TestRoundedAtEmission(t *testing.T) {
	r := RoomSavings{CostSavings: 692.5968, EnergySavingsKWh: 6219.6001}.Rounded()
	if r.CostSavings != 692.6 {
		t.Errorf("CostSavings rounded = %v, want 692.6", r.CostSavings)
	}
	if r.EnergySavingsKWh != 6219.6 {
		t.Errorf("EnergySavingsKWh rounded = %v, want 6219.6", r.EnergySavingsKWh)
	}
}

// TestRoomDisplayName covers the location/tag preference and fallback.
func TestRoomDisplayName(t *testing.T) {
	tag := &models.RoomTag{Name: "Classroom"}

	cases := []struct {
		name string
		room models.Room
		want string
	}{
		{"location only", models.Room{Location: "Rm 214"}, "Rm 214"},
		{"tag only", models.Room{Tag: tag}, "Classroom"},
		{"both", models.Room{Location: "Rm 214", Tag: tag}, "Rm 214 - Classroom"},
		{"neither", models.Room{}, "(Unnamed Room)"},
		{"whitespace location", models.Room{Location: "   "}, "(Unnamed Room)"},
	}

	for _, tc := range cases {
		if got := RoomDisplayName(tc.room); got != tc.want {
			t.Errorf("%s: RoomDisplayName = %q, want %q", tc.name, got, tc.want)
		}
	}
}
