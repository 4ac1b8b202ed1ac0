package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spec-kit/bloodbridge/internal/domain"
)

// The urgency column is TEXT; sorting it directly would put 'medium'
// above 'high'. The listing order must come from the explicit rank.
func TestOpenRequestOrderUsesUrgencyRank(t *testing.T) {
	for _, urgency := range []domain.RequestUrgency{domain.UrgencyHigh, domain.UrgencyMedium} {
		want := fmt.Sprintf("WHEN '%s' THEN %d", urgency, urgency.Rank())
		if !strings.Contains(urgencyRankExpr, want) {
			t.Fatalf("rank expression missing %q: %s", want, urgencyRankExpr)
		}
	}
	if !strings.Contains(urgencyRankExpr, fmt.Sprintf("ELSE %d", domain.UrgencyLow.Rank())) {
		t.Fatalf("rank expression must default to the low rank: %s", urgencyRankExpr)
	}
	if strings.Contains(urgencyRankExpr, "ORDER BY br.urgency DESC") {
		t.Fatal("urgency must not be sorted as text")
	}
}
