package worldgen

import "testing"

func validSeed() *WorldSeed {
	return &WorldSeed{
		Name:  "testlands",
		Size:  Size{Width: 20, Height: 20},
		Biome: BiomeTemperate,
		POIs: []POI{
			{ID: "village-1", Type: POIVillage, Name: "Riverside", Position: &Position{X: 5, Y: 5}},
			{ID: "forest-zone", Type: POIForest, Name: "Old Wood", Region: &Region{XMin: 10, YMin: 10}},
		},
		Connections: []Connection{{From: "village-1", To: "forest-zone", Style: StyleDirt}},
	}
}

func TestValidSeedPasses(t *testing.T) {
	if err := validSeed().Validate(); err != nil {
		t.Fatalf("expected a well-formed seed to validate, got %v", err)
	}
}

func TestValidateRejectsUndersizedGrid(t *testing.T) {
	s := validSeed()
	s.Size = Size{Width: 3, Height: 20}
	if err := s.Validate(); err == nil {
		t.Error("expected error for width below 4")
	}
}

func TestValidateRejectsUnknownBiome(t *testing.T) {
	s := validSeed()
	s.Biome = "lunar"
	if err := s.Validate(); err == nil {
		t.Error("expected error for unrecognized biome")
	}
}

func TestValidateRejectsEmptyPOIID(t *testing.T) {
	s := validSeed()
	s.POIs[0].ID = ""
	if err := s.Validate(); err == nil {
		t.Error("expected error for empty poi id")
	}
}

func TestValidateRejectsDuplicatePOIID(t *testing.T) {
	s := validSeed()
	s.POIs = append(s.POIs, POI{ID: "village-1", Type: POITavern, Position: &Position{X: 1, Y: 1}})
	if err := s.Validate(); err == nil {
		t.Error("expected error for duplicate poi id")
	}
}

func TestValidateRejectsUnrecognizedPOIType(t *testing.T) {
	s := validSeed()
	s.POIs[0].Type = "spaceport"
	if err := s.Validate(); err == nil {
		t.Error("expected error for unrecognized poi type")
	}
}

func TestValidateRejectsBothPositionAndRegion(t *testing.T) {
	s := validSeed()
	s.POIs[0].Region = &Region{XMin: 1, YMin: 1}
	if err := s.Validate(); err == nil {
		t.Error("expected error when both position and region are set")
	}
}

func TestValidateRejectsNeitherPositionNorRegion(t *testing.T) {
	s := validSeed()
	s.POIs[0].Position = nil
	if err := s.Validate(); err == nil {
		t.Error("expected error when neither position nor region is set")
	}
}

func TestValidateRejectsRegionOnSettlementType(t *testing.T) {
	s := validSeed()
	s.POIs[0].Position = nil
	s.POIs[0].Region = &Region{XMin: 1, YMin: 1}
	if err := s.Validate(); err == nil {
		t.Error("expected error: region is only valid for terrain poi types")
	}
}

func TestValidateRejectsOutOfBoundsPosition(t *testing.T) {
	s := validSeed()
	s.POIs[0].Position = &Position{X: 100, Y: 100}
	if err := s.Validate(); err == nil {
		t.Error("expected error for out-of-bounds position")
	}
}

func TestValidateRejectsUnknownConnectionEndpoint(t *testing.T) {
	s := validSeed()
	s.Connections = append(s.Connections, Connection{From: "village-1", To: "ghost-town"})
	if err := s.Validate(); err == nil {
		t.Error("expected error for connection referencing unknown poi id")
	}
}

func TestValidateRejectsUnrecognizedEndpointDirection(t *testing.T) {
	s := validSeed()
	s.RoadEndpoints = []RoadEndpoint{{Direction: "UP"}}
	if err := s.Validate(); err == nil {
		t.Error("expected error for unrecognized road endpoint direction")
	}
}

func TestValidateRejectsOutOfRangeSliders(t *testing.T) {
	s := validSeed()
	s.TerrainOptions = &TerrainOptions{ForestDensity: 1.5, WaterLevel: 0.5, VillageCount: 1}
	if err := s.Validate(); err == nil {
		t.Error("expected error for forestDensity outside [0,1]")
	}
}

func TestEffectiveTerrainOptionsDefaultsWhenAbsent(t *testing.T) {
	s := validSeed()
	opts := s.EffectiveTerrainOptions()
	if opts.VillageCount <= 0 {
		t.Error("expected a positive default village count")
	}
}

func TestRoadEndpointEdgeCoordinates(t *testing.T) {
	cases := map[EdgeDirection]Position{
		DirN:  {X: 10, Y: 0},
		DirS:  {X: 10, Y: 19},
		DirE:  {X: 19, Y: 10},
		DirW:  {X: 0, Y: 10},
		DirNE: {X: 19, Y: 0},
	}
	for dir, want := range cases {
		got := RoadEndpoint{Direction: dir}.EdgeCoordinate(20, 20)
		if got != want {
			t.Errorf("direction %s: expected %+v, got %+v", dir, want, got)
		}
	}
}
