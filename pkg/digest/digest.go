package digest

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/match-digest-bot/internal/models"
)

// Fixed notices sent through the notifier
const (
	Header          = "⚽ PREDICCIONES PRE-PARTIDO ⚽\n\n"
	NoMatchesNotice = "🚫 No hay partidos hoy para predecir"
	LiveStubNotice  = "🔴 Función de partidos en vivo próximamente..."
	Recommendation  = "✅ RECOMENDADO: Over 2.5"

	PredictionsErrorPrefix = "❌ Error en predicciones: "
	LiveErrorPrefix        = "❌ Error en partidos en vivo: "
)

// Digest is the rendered pre-game message
type Digest struct {
	Text  string // Header followed by one block per qualifying prediction
	Count int    // Number of qualifying predictions
}

// Empty reports whether no prediction qualified
func (d Digest) Empty() bool {
	return d.Count == 0
}

// Builder renders predictions into a digest
type Builder struct {
	logger zerolog.Logger
}

// NewBuilder creates a new digest builder
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{
		logger: logger.With().Str("component", "digest_builder").Logger(),
	}
}

// Build renders a block for every prediction likely to go over 2.5 goals,
// preserving input order
func (b *Builder) Build(predictions []models.MatchPrediction) Digest {
	var sb strings.Builder
	sb.WriteString(Header)

	count := 0
	for _, pred := range predictions {
		if !pred.IsLikelyOver25() {
			continue
		}
		count++
		sb.WriteString(FormatBlock(pred))
	}

	b.logger.Debug().
		Int("input_count", len(predictions)).
		Int("qualifying_count", count).
		Msg("digest built")

	return Digest{Text: sb.String(), Count: count}
}

// FormatBlock renders a single prediction
func FormatBlock(pred models.MatchPrediction) string {
	return fmt.Sprintf(
		"🔥 %s vs %s\n"+
			"📊 %.2f goles promedio\n"+
			"📈 %d%% over 2.5\n"+
			"%s\n\n",
		pred.HomeTeam,
		pred.AwayTeam,
		pred.AvgGoals,
		pred.Over25Pct,
		Recommendation,
	)
}

// ErrorNotice embeds a failure description into the notice for a responsibility
func ErrorNotice(prefix string, err error) string {
	return prefix + err.Error()
}
