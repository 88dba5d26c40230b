// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/bwperf/bwperf/bwchart"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.}}</title></head>
<body style="margin:0;background:#fff">
<img src="chart.png" alt="{{.}}" style="max-width:100%;height:auto">
</body>
</html>
`))

// chartHandler serves an HTML page showing the PNG image chart at /
// and the image itself at /chart.png.
func chartHandler(title string, chart []byte) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chart.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(chart)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, title); err != nil {
			http.Error(w, err.Error(), 500)
		}
	})
	return mux
}

// serveHTTP serves fig on addr until interrupted.
func serveHTTP(addr string, fig *bwchart.Figure, stderr io.Writer) error {
	var buf bytes.Buffer
	if err := fig.WritePNG(&buf); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: chartHandler(fig.Title, buf.Bytes())}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	fmt.Fprintf(stderr, "bwplot: serving %s on http://%s/\n", fig.Title, ln.Addr())
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
