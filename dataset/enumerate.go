package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	dicomName   = regexp.MustCompile(`^(\d+)\.dcm$`)
	contourName = regexp.MustCompile(`^IM-\d+-(\d+)-[io]contour-manual\.txt$`)
)

// Enumerate scans the dataset rooted at root and returns every identifier
// with both a DICOM file and a matching contour file. Slice numbers are
// matched with leading zeros stripped, so IM-0001-0048-icontour-manual.txt
// pairs with 48.dcm. Files present on only one side are left out.
//
// A structural problem with the dataset returns a *LayoutError.
func Enumerate(root string, opts Options) ([]Item, error) {
	studies, err := readLinks(root)
	if err != nil {
		return nil, err
	}

	var items []Item
	for _, s := range studies {
		studyItems, err := enumerateStudy(s.dicomDir, s.contourDir)
		if err != nil {
			return nil, err
		}
		items = append(items, studyItems...)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ImagePath < items[j].ImagePath
	})

	if opts.Shuffle {
		rng := rand.New(rand.NewSource(opts.Seed))
		rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}

	return items, nil
}

type study struct {
	dicomDir   string
	contourDir string
}

// readLinks parses link.csv, which maps each study's DICOM directory name to
// its contour directory name. The first row is a header.
func readLinks(root string) ([]study, error) {
	path := filepath.Join(root, "link.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, &LayoutError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &LayoutError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LayoutError{Path: path, Err: errors.New("empty link file")}
	}

	studies := make([]study, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 {
			return nil, &LayoutError{Path: path, Err: fmt.Errorf("link row %q needs two columns", strings.Join(row, ","))}
		}
		studies = append(studies, study{
			dicomDir:   filepath.Join(root, "dicoms", row[0]),
			contourDir: filepath.Join(root, "contourfiles", row[1], "i-contours"),
		})
	}
	return studies, nil
}

// enumerateStudy pairs the DICOM and contour files of a single study by
// slice number, keeping only slices present on both sides.
func enumerateStudy(dicomDir, contourDir string) ([]Item, error) {
	dicoms, err := indexDir(dicomDir, dicomName, stripZeros)
	if err != nil {
		return nil, err
	}
	contours, err := indexDir(contourDir, contourName, stripZeros)
	if err != nil {
		return nil, err
	}

	var items []Item
	for slice, dicomPath := range dicoms {
		if contourPath, ok := contours[slice]; ok {
			items = append(items, Item{ImagePath: dicomPath, ContourPath: contourPath})
		}
	}
	return items, nil
}

// indexDir maps the normalized capture group of pattern to the full path of
// each matching file in dir. Non-matching files are ignored.
func indexDir(dir string, pattern *regexp.Regexp, normalize func(string) string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LayoutError{Path: dir, Err: err}
	}

	index := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		index[normalize(m[1])] = filepath.Join(dir, entry.Name())
	}
	return index, nil
}

func stripZeros(s string) string {
	return strings.TrimLeft(s, "0")
}
