// Command scoreplay scores a saved "playing a hand" snapshot and prints the
// step-by-step trace.
//
//	scoreplay [-approximate] [-debug] play.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/HeadedBranch/auto-balatro/balatro"
	"github.com/HeadedBranch/auto-balatro/scoring"
)

func main() {
	approximate := flag.Bool("approximate", false, "skip unmodeled joker effects instead of failing")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-approximate] [-debug] <play.json>\n", os.Args[0])
		os.Exit(2)
	}

	if *debug {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	play, err := readPlay(flag.Arg(0))
	if err != nil {
		logger.Error("cannot load snapshot", "file", flag.Arg(0), "error", err)
		os.Exit(1)
	}
	logger.Debug("snapshot loaded", "cards", len(play.Hand), "jokers", len(play.Jokers))

	engine := scoring.NewEngine(scoring.Options{ApproximateUnmodeled: *approximate})
	res, err := engine.Score(play.WithHandDefaults())
	if err != nil {
		logger.Error("scoring failed", "kind", scoring.ErrorKind(err), "error", err)
		os.Exit(1)
	}

	if err := renderTrace(res); err != nil {
		logger.Error("render trace", "error", err)
	}
	for _, u := range res.Unmodeled {
		logger.Warn("effect skipped", "joker", u.Joker.String(), "phase", string(u.Phase), "reason", u.Reason)
	}

	cards := make([]string, len(res.Scored))
	for i, c := range res.Scored {
		cards[i] = c.String()
	}
	summary := pterm.Sprintfln("%s  %s", pterm.LightCyan(res.Kind.String()), strings.Join(cards, " "))
	summary += pterm.Sprintf("%s chips x %s mult = %s",
		pterm.LightBlue(formatNum(res.Chips)), pterm.LightRed(formatNum(res.Mult)), pterm.LightGreen(formatNum(res.Total)))
	pterm.DefaultBox.WithTitle(pterm.LightYellow("|SCORE|")).WithTitleTopCenter().WithHorizontalPadding(4).Println(summary)
}

func readPlay(path string) (balatro.Play, error) {
	var play balatro.Play
	data, err := os.ReadFile(path)
	if err != nil {
		return play, err
	}
	if err := json.Unmarshal(data, &play); err != nil {
		return play, err
	}
	return play, play.Validate()
}

func renderTrace(res scoring.Result) error {
	data := pterm.TableData{{"Phase", "Source", "Op", "Amount", "Chips", "Mult"}}
	for _, s := range res.Trace {
		data = append(data, []string{
			string(s.Phase), s.Source, s.Op, formatNum(s.Amount), formatNum(s.Chips), formatNum(s.Mult),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

func formatNum(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
