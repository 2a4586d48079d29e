package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/usecase"
)

func TestExpandTemplate(t *testing.T) {
	out := usecase.ExpandTemplate(
		"# Results\n\n$parse_results_table\n${write_results_table}\nCosts $$5, keeps $other and $ alone.\n",
		map[string]string{
			"parse_results_table": "PARSE",
			"write_results_table": "WRITE",
		},
	)
	gt.Equal(t, out, "# Results\n\nPARSE\nWRITE\nCosts $5, keeps $other and $ alone.\n")
}

func TestReporter_Readme(t *testing.T) {
	doc := &model.Document{Benchmarks: []model.Benchmark{
		bench(`BM_ParseHapply/"Bunny (ply)"`, 5.0),
		bench(`BM_ParseMiniply/"Bunny (ply)"`, 10.0),
		bench(`BM_WriteHapply/"Random mesh"`, 2.0),
		bench(`BM_WriteTinyply/"Random mesh"`, 1.0),
	}}

	out, err := usecase.NewReporter(nil).Readme(t.Context(), doc, "## Parse\n$parse_results_table\n## Write\n$write_results_table")
	gt.NoError(t, err)
	gt.String(t, out).Contains("| 1 | [hapPLY](https://github.com/nmwsharp/happly)")
	gt.String(t, out).Contains("| 1 | [tinyply 2.3](https://github.com/ddiakopoulos/tinyply)")
	gt.String(t, out).Contains("| Random mesh    |")
	gt.String(t, out).Contains("## Write\n|")
}
