// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package omero

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
)

const fakeCSRF = "csrf-tok-123"
const fakeSession = "session-abc"

// fakeOmero - enough of OMERO.web's JSON API to exercise the client. Pages are capped at maxLimit
// items so paging gets exercised
type fakeOmero struct {
	mutex sync.Mutex

	maxLimit int
	plates   map[int64][]plate // by screen
	wells    map[int64][]well  // by plate
	images   map[int64]Image

	failSaveForImage int64
	saved            []roiJSON
	deleted          []int64
	existingROIs     map[int64]bool
	nextID           int64
	requests         []string
}

func newFakeOmero() *fakeOmero {
	return &fakeOmero{
		maxLimit:     2,
		plates:       map[int64][]plate{},
		wells:        map[int64][]well{},
		images:       map[int64]Image{},
		existingROIs: map[int64]bool{},
		nextID:       1000,
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

func page[T any](r *http.Request, items []T, maxLimit int) map[string]interface{} {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	if offset > end {
		offset = end
	}

	return map[string]interface{}{
		"data": items[offset:end],
		"meta": map[string]interface{}{"offset": offset, "limit": limit, "maxLimit": maxLimit, "totalCount": len(items)},
	}
}

func (f *fakeOmero) start() *httptest.Server {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v0").Subrouter()

	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.mutex.Lock()
			f.requests = append(f.requests, r.Method+" "+r.URL.Path)
			f.mutex.Unlock()
			next.ServeHTTP(w, r)
		})
	})

	api.HandleFunc("/token/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: fakeCSRF, Path: "/"})
		writeJSON(w, http.StatusOK, map[string]string{"data": fakeCSRF})
	}).Methods(http.MethodGet)

	api.HandleFunc("/servers/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": []serverInfo{{ID: 1, Host: "localhost", Port: 4064, Server: "omero"}},
		})
	}).Methods(http.MethodGet)

	api.HandleFunc("/login/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-CSRFToken") != fakeCSRF {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "CSRF verification failed"})
			return
		}
		r.ParseForm()
		if r.PostForm.Get("server") != "1" || r.PostForm.Get("username") != "importer" || r.PostForm.Get("password") != "secret123" {
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Login failed. Reason: Incorrect username or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: fakeSession, Path: "/"})
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"eventContext": map[string]interface{}{
				"userId": 52, "userName": "importer", "groupId": 3, "groupName": "idr-screens",
			},
		})
	}).Methods(http.MethodPost)

	m := api.PathPrefix("/m").Subrouter()
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("sessionid")
			if err != nil || cookie.Value != fakeSession {
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "Not logged in"})
				return
			}
			if r.Method != http.MethodGet && r.Header.Get("X-CSRFToken") != fakeCSRF {
				writeJSON(w, http.StatusForbidden, map[string]string{"message": "CSRF verification failed"})
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	m.HandleFunc("/screens/{id}/plates/", func(w http.ResponseWriter, r *http.Request) {
		f.mutex.Lock()
		defer f.mutex.Unlock()
		writeJSON(w, http.StatusOK, page(r, f.plates[pathID(r, "id")], f.maxLimit))
	}).Methods(http.MethodGet)

	m.HandleFunc("/plates/{id}/wells/", func(w http.ResponseWriter, r *http.Request) {
		f.mutex.Lock()
		defer f.mutex.Unlock()
		writeJSON(w, http.StatusOK, page(r, f.wells[pathID(r, "id")], f.maxLimit))
	}).Methods(http.MethodGet)

	m.HandleFunc("/images/{id}/", func(w http.ResponseWriter, r *http.Request) {
		f.mutex.Lock()
		defer f.mutex.Unlock()
		id := pathID(r, "id")
		img, ok := f.images[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("Image %v not found", id)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": img})
	}).Methods(http.MethodGet)

	m.HandleFunc("/save/", func(w http.ResponseWriter, r *http.Request) {
		f.mutex.Lock()
		defer f.mutex.Unlock()

		var roi roiJSON
		if err := json.NewDecoder(r.Body).Decode(&roi); err != nil || roi.Type != typeROI || roi.Image == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Bad ROI"})
			return
		}
		if roi.Image.ID == f.failSaveForImage {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Save failed"})
			return
		}

		roi.ID = f.nextID
		f.nextID++
		for c := range roi.Shapes {
			roi.Shapes[c].ID = f.nextID
			f.nextID++
		}
		f.saved = append(f.saved, roi)
		f.existingROIs[roi.ID] = true

		writeJSON(w, http.StatusCreated, map[string]interface{}{"data": roi})
	}).Methods(http.MethodPost)

	m.HandleFunc("/rois/{id}/", func(w http.ResponseWriter, r *http.Request) {
		f.mutex.Lock()
		defer f.mutex.Unlock()
		id := pathID(r, "id")
		if !f.existingROIs[id] {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("ROI %v not found", id)})
			return
		}
		delete(f.existingROIs, id)
		f.deleted = append(f.deleted, id)
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": map[string]interface{}{"@id": id}})
	}).Methods(http.MethodDelete)

	return httptest.NewServer(router)
}

// addScreen - screen 102 with two plates, 3 wells on the first, 1 on the second. Image names follow the
// "{plate} [Well {well}, Field {field}]" pattern, one is odd on purpose
func (f *fakeOmero) addScreen() {
	f.plates[102] = []plate{{ID: 11, Name: "PlateX"}, {ID: 12, Name: "PlateY"}}
	f.wells[11] = []well{
		{ID: 1, Row: 0, Column: 2, WellSamples: []wellSample{
			{ID: 1, Image: Image{ID: 1230, Name: "PlateX [Well A03, Field 1]"}},
			{ID: 2, Image: Image{ID: 1231, Name: "PlateX [Well A03, Field 2]"}},
		}},
		{ID: 2, Row: 1, Column: 9, WellSamples: []wellSample{
			{ID: 3, Image: Image{ID: 1232, Name: "PlateX [Well B10, Field 1]"}},
		}},
		{ID: 3, Row: 2, Column: 0, WellSamples: []wellSample{}},
	}
	f.wells[12] = []well{
		{ID: 4, Row: 0, Column: 0, WellSamples: []wellSample{
			{ID: 4, Image: Image{ID: 1240, Name: "some-thumbnail.png"}},
		}},
	}
	for _, w := range append(f.wells[11], f.wells[12]...) {
		for _, ws := range w.WellSamples {
			f.images[ws.Image.ID] = ws.Image
		}
	}
}
