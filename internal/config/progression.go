package config

// Progression defines when a player moves up a level: every Every correct
// answers, up to MaxLevel. Every = 0 disables levelling.
type Progression struct {
	Every    int `yaml:"every"`
	MaxLevel int `yaml:"max_level"`
}

// Enabled returns whether levelling is active.
func (p Progression) Enabled() bool {
	return p.Every > 0 && p.MaxLevel > 1
}

// ShouldAdvance reports whether reaching score while on level earns the
// next level. Only exact multiples of Every count, so a level is earned
// once per threshold.
func (p Progression) ShouldAdvance(score, level int) bool {
	if !p.Enabled() || score <= 0 {
		return false
	}
	return score%p.Every == 0 && level < p.MaxLevel
}

// Progress returns how far score is toward the next level, as done of total.
// Games with levelling disabled report 0 of 0.
func (p Progression) Progress(score int) (done, total int) {
	if !p.Enabled() {
		return 0, 0
	}
	if score < 0 {
		score = 0
	}
	return score % p.Every, p.Every
}

// ClampLevel restricts level to [1, MaxLevel].
func (p Progression) ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if p.MaxLevel > 0 && level > p.MaxLevel {
		return p.MaxLevel
	}
	return level
}
