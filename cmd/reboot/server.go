// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/GermanBionicSystems/reboot/reboot"
	"github.com/julienschmidt/httprouter"
)

// server exposes a Board over HTTP. Board calls are serialized since the
// displays share one bus.
type server struct {
	mu    sync.Mutex
	board *reboot.Board
	// updated, if set, is called after each successful request with mu held.
	updated func()
}

func newRouter(s *server) *httprouter.Router {
	r := httprouter.New()
	r.PUT("/displays/:digits/text", s.handle(func(digits int, body string) (int, error) {
		return http.StatusNoContent, s.board.WriteText(digits, body)
	}))
	r.POST("/displays/:digits/random", s.handle(func(digits int, _ string) (int, error) {
		return http.StatusNoContent, s.board.WriteRandom(digits)
	}))
	r.POST("/displays/:digits/reset", s.handle(func(digits int, _ string) (int, error) {
		return http.StatusNoContent, s.board.ResetDisplay(digits)
	}))
	r.PUT("/displays/:digits/brightness", s.handle(func(digits int, body string) (int, error) {
		percent, err := strconv.Atoi(strings.TrimSpace(body))
		if err != nil {
			return http.StatusBadRequest, err
		}
		return http.StatusNoContent, s.board.SetBrightness(digits, percent)
	}))
	return r
}

// handle parses the digits parameter and the body, then runs fn. A non-nil
// error with a success status is a bus failure.
func (s *server) handle(fn func(digits int, body string) (int, error)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		digits, err := strconv.Atoi(ps.ByName("digits"))
		if err != nil {
			http.Error(w, "digits must be an integer", http.StatusBadRequest)
			return
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, 256))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		status, err := fn(digits, string(body))
		if err != nil {
			if status < 400 {
				status = http.StatusBadGateway
			}
			log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, err.Error(), status)
			return
		}
		log.Printf("%s %s", r.Method, r.URL.Path)
		if s.updated != nil {
			s.updated()
		}
		w.WriteHeader(status)
	}
}
