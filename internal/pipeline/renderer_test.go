package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/steamrisk/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		SteamID: testSteamID,
		Rows: []model.ReportRow{
			{
				AppID:      200,
				Name:       "Imported Title",
				HasDetail:  true,
				Developers: []string{"Imported Dev"},
				Publishers: []string{"Tencent Games"},
				Origin: model.OriginAssessment{
					Strong:   true,
					Evidence: "publisher: Tencent Games",
				},
				Risk: model.RiskAssessment{
					Score:   5,
					Factors: []string{"+5 strong origin signal (publisher: Tencent Games)"},
				},
				StoreURL: model.StoreURL(200),
			},
			{
				AppID:     100,
				Name:      "Plain Game",
				HasDetail: true,
				Risk:      model.RiskAssessment{Factors: []string{}},
				StoreURL:  model.StoreURL(100),
			},
		},
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer().RenderTable(sampleReport(), &buf)

	out := buf.String()
	assert.Contains(t, out, "Imported Title")
	assert.Contains(t, out, "Plain Game")
	assert.Contains(t, out, "strong")
	assert.Contains(t, out, "Score")
}

func TestRenderCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, NewRenderer().RenderCSV(sampleReport(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Score,Name,AppID")
	assert.Contains(t, lines[1], "Imported Title")
	assert.Contains(t, lines[2], "Plain Game")
}

func TestOriginLabel(t *testing.T) {
	assert.Equal(t, "strong", originLabel(model.OriginAssessment{Strong: true}))
	assert.Equal(t, "weak+audio", originLabel(model.OriginAssessment{WeakLanguage: true, FullAudio: true}))
	assert.Equal(t, "weak", originLabel(model.OriginAssessment{WeakLanguage: true}))
	assert.Equal(t, "", originLabel(model.OriginAssessment{}))
}
