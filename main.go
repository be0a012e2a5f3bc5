package main

import (
	goerrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"htmlscope/internal/locator"
	"htmlscope/internal/render"
	"htmlscope/internal/workspace"
)

var (
	offset      = kingpin.Flag("offset", "Print the range of the complete element at this character offset (requires a single file)").Short('c').Default("-1").Int()
	remove      = kingpin.Flag("delete", "Remove the located element from the file, then print the updated outline").Short('d').Bool()
	showOffsets = kingpin.Flag("offsets", "Show each element's start offset in the outline").Bool()
	watch       = kingpin.Flag("watch", "Watch files for changes and re-print their outline automatically").Short('w').Bool()
	files       = kingpin.Arg("files", "HTML files to analyze").Required().ExistingFiles()

	renderOpts render.Options
)

func main() {
	kingpin.Parse()

	renderOpts = render.Options{
		ShowOffsets: *showOffsets,
	}

	switch {
	case *offset >= 0:
		if len(*files) != 1 {
			kingpin.Fatalf("--offset requires exactly one file")
		}

		err := locateIn((*files)[0])
		if err != nil {
			kingpin.Fatalf("%s", err)
		}

	case *watch:
		err := watchFiles()
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}

	default:
		err := outlineAll()
		if err != nil {
			kingpin.Fatalf("%s", err)
		}
	}
}

func outlineAll() error {
	wd, _ := os.Getwd()
	ws := workspace.New(wd)

	for _, fname := range *files {
		if len(*files) > 1 {
			fmt.Printf("%s:\n", fname)
		}

		err := printOutline(ws, fname)
		if err != nil {
			return fmt.Errorf("analyze file %q: %w", fname, err)
		}
	}

	return nil
}

func printOutline(ws *workspace.Workspace, fname string) error {
	doc, err := ws.Load(fname)
	if err != nil {
		return err
	}

	return render.Visit(os.Stdout, doc.Roots, renderOpts)
}

func locateIn(fname string) error {
	wd, _ := os.Getwd()
	ws := workspace.New(wd)

	doc, err := ws.Load(fname)
	if err != nil {
		return fmt.Errorf("load file %q: %w", fname, err)
	}

	r, err := locator.Locate(doc.Text, *offset)
	if err != nil {
		var poserr SituatedErr

		if goerrors.As(err, &poserr) {
			return fmt.Errorf("could not find an element around line %d of %s", poserr.At().Line+1, fname)
		}

		return err
	}

	fmt.Printf("%d:%d\n%s\n", r.Start, r.End, doc.Text[r.Start:r.End])

	if !*remove {
		return nil
	}

	edited := doc.Text[:r.Start] + doc.Text[r.End:]

	err = os.WriteFile(doc.Path, []byte(edited), 0644)
	if err != nil {
		return fmt.Errorf("write file %q: %w", fname, err)
	}

	ws.Invalidate(fname)

	return printOutline(ws, fname)
}

func waitForInterrupt() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
}
