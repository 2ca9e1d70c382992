package review

// Params defines the score changes applied for each review outcome.
type Params struct {
	// Points added to a card's score for each outcome. Correct answers move
	// the score towards domain.BestThreshold, incorrect ones towards
	// domain.WorstThreshold.
	Points map[Outcome]int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	CorrectPoints   int
	IncorrectPoints int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Points: map[Outcome]int{
			OutcomeCorrect:   1,
			OutcomeIncorrect: -1,
		},
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero fields keep their defaults; a field with the wrong sign is ignored.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.CorrectPoints > 0 {
		params.Points[OutcomeCorrect] = config.CorrectPoints
	}
	if config.IncorrectPoints < 0 {
		params.Points[OutcomeIncorrect] = config.IncorrectPoints
	}

	return params
}

// CorrectPoints returns the score change for a correct answer.
func (p *Params) CorrectPoints() int {
	return p.Points[OutcomeCorrect]
}

// IncorrectPoints returns the score change for an incorrect answer.
func (p *Params) IncorrectPoints() int {
	return p.Points[OutcomeIncorrect]
}
