package providers

import "testing"

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty string", "", 0},
		{"whitespace only", "   \n\t  ", 0},
		{"single word", "hello", 2},                      // ceil(1 * 1.3)
		{"two words", "hello world", 3},                  // ceil(2 * 1.3)
		{"ten words", "a b c d e f g h i j", 13},         // ceil(10 * 1.3)
		{"collapses whitespace", "hello    world\n\t", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTokens(tt.text)
			if got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name           string
		totalTokens    int
		costPerMillion float64
		want           float64
	}{
		{"zero tokens", 0, 0.10, 0},
		{"negative tokens", -5, 0.10, 0},
		{"zero rate", 1000, 0, 0},
		{"one million tokens at rate", 1_000_000, 0.10, 0.10},
		{"thousand tokens", 1000, 0.10, 0.0001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateCost(tt.totalTokens, tt.costPerMillion)
			if got != tt.want {
				t.Errorf("EstimateCost(%d, %v) = %v, want %v", tt.totalTokens, tt.costPerMillion, got, tt.want)
			}
		})
	}
}
