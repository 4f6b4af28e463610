// Thumbnailer scans the upload tree for listing photos that have no
// thumbnail and generates them. With -watch it stays running and picks up
// files that appear out-of-band (bulk rsync imports, manual fixes), so the
// web process never has to block on image decoding.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"sangrurestate/pkg/imagestore"
)

var verbose bool

func logV(format string, args ...interface{}) {
	if verbose {
		log.Printf(format, args...)
	}
}

func main() {
	dirFlag := flag.String("dir", "", "directory to scan (default $UPLOAD_BASE/property_images)")
	watch := flag.Bool("watch", false, "keep watching the directory after the initial scan")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent thumbnail workers")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	dir := *dirFlag
	if dir == "" {
		base := os.Getenv("UPLOAD_BASE")
		if base == "" {
			base = "uploads"
		}
		dir = filepath.Join(base, "property_images")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("cannot create %s: %v", dir, err)
	}

	initial := listImageFiles(dir)
	log.Printf("scanning %s: %d candidate files", dir, len(initial))

	if !*watch {
		runWorkerPool(dir, initial, *workers)
		return
	}
	if err := watchDirectory(dir, initial, *workers); err != nil {
		log.Fatalf("watch failed: %v", err)
	}
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !wantsThumb(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

// wantsThumb filters to image files that are not themselves thumbnails.
func wantsThumb(name string) bool {
	return imagestore.SupportedImageExt(name) && !imagestore.IsThumb(name)
}

func watchDirectory(dir string, initial []string, workers int) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", dir)

	fileCh := make(chan string, 256)
	go func() {
		// simple debounce map of pending files: writers may still be
		// streaming when the Create event fires
		pending := map[string]time.Time{}
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					close(fileCh)
					return
				}
				if ev.Op&fsnotify.Create == fsnotify.Create {
					name := filepath.Base(ev.Name)
					if !wantsThumb(name) {
						continue
					}
					pending[name] = time.Now()
				}
			case <-ticker.C:
				now := time.Now()
				for name, t := range pending {
					if now.Sub(t) > 300*time.Millisecond { // stable
						fileCh <- name
						delete(pending, name)
					}
				}
			case err, ok := <-w.Errors:
				if !ok {
					close(fileCh)
					return
				}
				log.Printf("watch error: %v", err)
			}
		}
	}()

	go runWorkerPool(dir, initial, workers, fileCh)
	// block forever (Ctrl+C to exit)
	select {}
}

// runWorkerPool fans filenames out to thumbnail workers. With extra channels
// it keeps running; without, it drains the initial list and returns.
func runWorkerPool(dir string, initial []string, workers int, extraCh ...<-chan string) {
	if workers < 1 {
		workers = 1
	}
	fileCh := make(chan string, 1024)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range fileCh {
				processSingleFile(dir, name)
			}
		}()
	}
	go func() {
		for _, f := range initial {
			fileCh <- f
		}
		for _, ch := range extraCh {
			go func(c <-chan string) {
				for n := range c {
					fileCh <- n
				}
			}(ch)
		}
		if len(extraCh) == 0 {
			close(fileCh)
		}
	}()
	if len(extraCh) == 0 {
		wg.Wait()
	}
}

func processSingleFile(dir, name string) {
	full := filepath.Join(dir, name)
	if imagestore.HasThumb(full) {
		logV("SKIP thumb exists %s", name)
		return
	}
	if err := imagestore.CreateThumb(full); err != nil {
		log.Printf("thumb failed %s: %v", name, err)
		return
	}
	logV("thumb created %s", name)
}
