// statsgen runs the reconciliation pipeline offline: schedule, name mapping
// and activity files in, one stats_por_turno workbook out. Useful when the
// operator just wants the spreadsheet without a running server.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/export"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/models"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/reconcile"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/session"
	"github.com/rockmnakaito-hue/StatsBotCompi/pkg/table"
)

func main() {
	schedulePath := flag.String("schedule", "", "schedule CSV (Date, Shift title, Users)")
	mappingPath := flag.String("mappings", "", "name mapping XLSX/CSV (optional)")
	activityPath := flag.String("activity", "", "activity stats CSV")
	dateArg := flag.String("date", "", "date to reconcile, YYYY-MM-DD")
	outPath := flag.String("out", "", "output workbook path (default stats_por_turno_<date>.xlsx)")
	flag.Parse()

	if *schedulePath == "" || *activityPath == "" || *dateArg == "" {
		fmt.Println("Usage: statsgen -schedule horario.csv -activity stats.csv -date 2024-05-01 [-mappings mapa.xlsx] [-out archivo.xlsx]")
		os.Exit(1)
	}

	date, err := time.Parse("2006-01-02", *dateArg)
	if err != nil {
		fail("invalid -date, expected YYYY-MM-DD: %v", err)
	}

	schedule := readTable(*schedulePath)
	if err := table.RequireColumns(schedule, reconcile.ColDate, reconcile.ColShiftTitle, reconcile.ColUsers); err != nil {
		fail("schedule: %v", err)
	}

	activity := readTable(*activityPath)
	if err := table.RequireColumns(activity, reconcile.ColFirstName, reconcile.ColLastName); err != nil {
		fail("activity: %v", err)
	}

	mapping := readOptionalTable(*mappingPath)

	sess := &session.Session{ID: "statsgen"}
	sess.SetActivity(activity)
	if err := sess.SelectDate(date, schedule, mapping); err != nil {
		fail("reconciliation failed: %v", err)
	}

	for _, line := range sess.Log {
		fmt.Fprintln(os.Stderr, line)
	}
	for _, b := range sess.Buckets {
		fmt.Printf("%s: %d filas\n", b.Label, b.Table.Len())
	}

	workbook, err := export.Workbook(sess.Buckets, sess.Activity)
	if err != nil {
		fail("could not build workbook: %v", err)
	}

	out := *outPath
	if out == "" {
		out = fmt.Sprintf("stats_por_turno_%s.xlsx", date.Format("2006-01-02"))
	}
	if err := workbook.SaveAs(out); err != nil {
		fail("could not write %s: %v", out, err)
	}
	fmt.Printf("Archivo generado: %s\n", out)
}

func readTable(path string) *models.Table {
	f, err := os.Open(path)
	if err != nil {
		fail("could not open %s: %v", path, err)
	}
	defer f.Close()

	t, err := table.ReadUpload(f, path)
	if err != nil {
		fail("could not parse %s: %v", path, err)
	}
	return t
}

func readOptionalTable(path string) *models.Table {
	if path == "" {
		return models.NewTable(nil)
	}
	return readTable(path)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
