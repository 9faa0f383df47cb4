// Command chart-server serves interactive charts of a collision run's
// results CSV. This is a local debugging viewer; point it at the results
// file a collision run writes and open the listed charts in a browser.
//
// Usage:
//
//	go run ./cmd/chart-server [flags]
//
// Flags:
//
//	-listen   Listen address (default: localhost:8093)
//	-results  Results CSV (default: collision_results.csv)
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/banshee-data/closeness.report/internal/chartserver"
)

func main() {
	listen := flag.String("listen", "localhost:8093", "Listen address")
	results := flag.String("results", "collision_results.csv", "Results CSV")
	flag.Parse()

	srv := chartserver.New(*results)
	log.Printf("chart server listening on http://%s (results=%s)", *listen, *results)
	if err := http.ListenAndServe(*listen, srv.ServeMux()); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
