package orrery

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	dateFormat         = "2006-01-02 15:04:05"
	dateFormatFilename = "2006-01-02-15.04.05"
)

// ExportTables writes the tables as CSV in the configured output directory and returns the
// file name.
func ExportTables(conf Config, name string, stamped bool, t *Tables) (string, error) {
	if stamped {
		name = fmt.Sprintf("%s-%s", name, time.Now().Format(dateFormatFilename))
	}
	filename := filepath.Join(conf.OutputDir, fmt.Sprintf("samples-%s.csv", name))
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteTables(f, t); err != nil {
		return "", err
	}
	return filename, f.Sync()
}

// WriteTables writes the resolved samples as CSV, preceded by a commented header.
func WriteTables(w io.Writer, t *Tables) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Reference opposition #%d: %s (t=%.6f)
# Earth year: %.6f days, Mars year: %.6f days, window: ±%.1f days
# Records are one sample per line. Positions are heliocentric, in AU, J2000 ecliptic.
#   Earth rows: index is the Earth offset i, pair is the Mars sample used.
#   Mars rows: index is the Mars offset j, pair is the number of sight lines.
body,index,pair,epoch,date,x,y,z,flag,chi2
`, time.Now().UTC().Format(dateFormat), t.RefIndex, EpochToTime(t.Reference.Epoch).Format(dateFormat),
		t.Reference.Epoch, t.EarthYear, t.MarsYear, t.Window))
	for _, s := range t.EarthSamples() {
		b.WriteString(fmt.Sprintf("earth,%d,%d,%.6f,%s,%.12f,%.12f,%.12f,%s,\n",
			s.I, s.J, s.Epoch, EpochToTime(s.Epoch).Format(dateFormat), s.Point[0], s.Point[1], s.Point[2], s.Flag))
	}
	for _, s := range t.MarsSamples() {
		flag := "solved"
		if s.Seed {
			flag = "seed"
		}
		b.WriteString(fmt.Sprintf("mars,%d,%d,%.6f,%s,%.12f,%.12f,%.12f,%s,%e\n",
			s.J, s.N, s.Epoch, EpochToTime(s.Epoch).Format(dateFormat), s.Point[0], s.Point[1], s.Point[2], flag, s.Chi2))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
