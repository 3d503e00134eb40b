package domain

// CampaignLength is the number of games in a full campaign arc.
const CampaignLength = 12

// Progression holds the resource caps for one game of the campaign.
type Progression struct {
	ThresholdValue int
	FieldStrength  int
}

// progressionTable is indexed by game number; index 0 is unused.
var progressionTable = [CampaignLength + 1]Progression{
	1:  {ThresholdValue: 700, FieldStrength: 10},
	2:  {ThresholdValue: 800, FieldStrength: 11},
	3:  {ThresholdValue: 900, FieldStrength: 12},
	4:  {ThresholdValue: 1000, FieldStrength: 13},
	5:  {ThresholdValue: 1100, FieldStrength: 14},
	6:  {ThresholdValue: 1200, FieldStrength: 15},
	7:  {ThresholdValue: 1300, FieldStrength: 16},
	8:  {ThresholdValue: 1400, FieldStrength: 17},
	9:  {ThresholdValue: 1500, FieldStrength: 18},
	10: {ThresholdValue: 1600, FieldStrength: 19},
	11: {ThresholdValue: 1700, FieldStrength: 20},
	12: {ThresholdValue: 1800, FieldStrength: 22},
}

// ProgressionFor returns the resource caps for the given game number.
// The game number is clamped into [1, CampaignLength]; games past the end
// of the arc keep the terminal caps.
func ProgressionFor(gameNumber int) Progression {
	if gameNumber < 1 {
		gameNumber = 1
	}
	if gameNumber > CampaignLength {
		gameNumber = CampaignLength
	}
	return progressionTable[gameNumber]
}
