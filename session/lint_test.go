package session

import (
	"strings"
	"testing"

	"github.com/milk9111/findthekeys/levels"
)

func TestLintDefaultLevelIsClean(t *testing.T) {
	lvl, err := levels.Default()
	if err != nil {
		t.Fatalf("load default level: %v", err)
	}
	_, s := newTestController(t, &stubPhysics{}, lvl)
	if issues := Lint(s, DefaultConfig()); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestLintFindsProblems(t *testing.T) {
	tests := []struct {
		name string
		edit func(*levels.Level)
		want string
	}{
		{
			name: "no pickups",
			edit: func(l *levels.Level) {},
			want: "never be won",
		},
		{
			name: "start inside wall",
			edit: func(l *levels.Level) {
				l.PlayerStart = &levels.Point{X: 64, Y: 40}
				l.Pickups.Points = []levels.Point{{X: 300, Y: 100}}
			},
			want: "player start overlaps wall",
		},
		{
			name: "buried pickup",
			edit: func(l *levels.Level) {
				l.Pickups.Points = []levels.Point{{X: 320, Y: 32}}
			},
			want: "buried",
		},
		{
			name: "pickup below death line",
			edit: func(l *levels.Level) {
				l.Pickups.Points = []levels.Point{{X: 900, Y: 0}}
			},
			want: "below the death line",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl := testLevel()
			tt.edit(lvl)
			_, s := newTestController(t, &stubPhysics{}, lvl)
			issues := Lint(s, DefaultConfig())
			for _, is := range issues {
				if strings.Contains(is.Message, tt.want) {
					return
				}
			}
			t.Fatalf("expected an issue containing %q, got %v", tt.want, issues)
		})
	}
}
