// Copyright (C) 2022 The Superkinodb Authors.
//
// This file is part of Superkinodb.
//
// Superkinodb is free software: you can redistribute it and/or modify it under
// the terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Superkinodb is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Superkinodb.  If not, see <https://www.gnu.org/licenses/>.

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/defsub/superkinodb/config"
	"github.com/defsub/superkinodb/kino"
	"github.com/defsub/superkinodb/lib/mason"
)

func testHandler(t *testing.T) http.Handler {
	config, err := config.TestConfig()
	if err != nil {
		t.Fatalf("TestConfig %s\n", err)
	}
	config.DB.Source = filepath.Join(t.TempDir(), "superkinodb.db")
	k := kino.NewKino(config)
	err = k.Open()
	if err != nil {
		t.Fatalf("Open %s\n", err)
	}
	t.Cleanup(k.Close)
	return NewHandler(k)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	if err != nil {
		t.Fatalf("Unmarshal %s\n", err)
	}
	return body
}

func controls(t *testing.T, body map[string]interface{}) map[string]interface{} {
	c, ok := body["@controls"].(map[string]interface{})
	if !ok {
		t.Fatalf("no @controls in %+v\n", body)
	}
	return c
}

func controlHref(t *testing.T, body map[string]interface{}, name string) string {
	c, ok := controls(t, body)[name].(map[string]interface{})
	if !ok {
		t.Fatalf("no %s control\n", name)
	}
	href, _ := c["href"].(string)
	return href
}

const alphaJson = `{
	"name": "Alpha",
	"release": "1999-03-31",
	"genre": "Action",
	"actors": ["Ann"],
	"directors": ["Dan"],
	"writers": ["Wen"]
}`

func postAlpha(t *testing.T, h http.Handler) {
	w := doRequest(t, h, "POST", "/api/movies/", alphaJson)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST movie got %d: %s\n", w.Code, w.Body.String())
	}
}

func TestEntryPoint(t *testing.T) {
	h := testHandler(t)

	w := doRequest(t, h, "GET", "/api/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d\n", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != mason.MediaType {
		t.Errorf("bad content type %s\n", ct)
	}
	body := decodeBody(t, w)
	ns, ok := body["@namespaces"].(map[string]interface{})
	if !ok {
		t.Fatal("no @namespaces")
	}
	if _, ok := ns["superkinodb"]; !ok {
		t.Error("superkinodb namespace missing")
	}
	if href := controlHref(t, body, "superkinodb:movies"); href != "/api/movies/" {
		t.Errorf("bad all-movies href %s\n", href)
	}
}

func TestUnknownPath(t *testing.T) {
	h := testHandler(t)

	for _, path := range []string{"/api/nothing/", "/api/movies/Alpha/nope/", "/"} {
		w := doRequest(t, h, "GET", path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s got %d\n", path, w.Code)
		}
	}
}

func TestDeepPathsBelowResources(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "POST", "/api/movies/Alpha/reviews/",
		`{"reviewer": "rev", "score": 5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST review got %d\n", w.Code)
	}

	// existing resources must not answer for paths below them
	for _, path := range []string{
		"/api/movies/Alpha/bogus/",
		"/api/movies/Alpha/bogus/deeper/",
		"/api/movies/Alpha/reviews/rev/bogus/",
	} {
		w := doRequest(t, h, "GET", path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s got %d\n", path, w.Code)
		}
	}

	// canonical paths still resolve
	w = doRequest(t, h, "GET", "/api/movies/Alpha/", "")
	if w.Code != http.StatusOK {
		t.Errorf("GET movie got %d\n", w.Code)
	}
	w = doRequest(t, h, "GET", "/api/movies/Alpha/reviews/rev/", "")
	if w.Code != http.StatusOK {
		t.Errorf("GET review got %d\n", w.Code)
	}
}

func TestMovieCreate(t *testing.T) {
	h := testHandler(t)

	w := doRequest(t, h, "POST", "/api/movies/", alphaJson)
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d: %s\n", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/movies/Alpha/" {
		t.Errorf("bad location %s\n", loc)
	}

	// same name again conflicts
	w = doRequest(t, h, "POST", "/api/movies/", alphaJson)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate got %d\n", w.Code)
	}
	body := decodeBody(t, w)
	if _, ok := body["@error"]; !ok {
		t.Error("conflict body should carry @error")
	}
}

func TestMovieCreateInvalid(t *testing.T) {
	h := testHandler(t)

	// no body
	w := doRequest(t, h, "POST", "/api/movies/", "")
	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("empty body got %d\n", w.Code)
	}
	// not JSON
	w = doRequest(t, h, "POST", "/api/movies/", "name=Alpha")
	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("non-JSON got %d\n", w.Code)
	}
	// JSON but missing required name
	w = doRequest(t, h, "POST", "/api/movies/", `{"genre": "Action"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name got %d\n", w.Code)
	}
	// JSON with wrongly typed fields violates the schema, not the media type
	w = doRequest(t, h, "POST", "/api/movies/", `{"name": 5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-string name got %d\n", w.Code)
	}
	w = doRequest(t, h, "POST", "/api/movies/", `{"name": "X", "actors": "Ann"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-array actors got %d\n", w.Code)
	}
	// bad date format
	w = doRequest(t, h, "POST", "/api/movies/", `{"name": "Bad", "release": "31-03-1999"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad release got %d\n", w.Code)
	}
}

func TestMovieGet(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "GET", "/api/movies/Alpha/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d\n", w.Code)
	}
	body := decodeBody(t, w)
	if body["name"] != "Alpha" || body["genre"] != "Action" || body["release"] != "1999-03-31" {
		t.Errorf("bad movie body %+v\n", body)
	}
	actors, _ := body["actors"].([]interface{})
	if len(actors) != 1 || actors[0] != "Ann" {
		t.Errorf("bad actors %+v\n", body["actors"])
	}
	if href := controlHref(t, body, "edit_movie"); href != "/api/movies/Alpha/" {
		t.Errorf("edit control should target the movie, got %s\n", href)
	}
	if href := controlHref(t, body, "reviews"); href != "/api/movies/Alpha/reviews/" {
		t.Errorf("bad reviews href %s\n", href)
	}

	w = doRequest(t, h, "GET", "/api/movies/Missing/", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown movie got %d\n", w.Code)
	}
}

func TestMovieList(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "GET", "/api/movies/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d\n", w.Code)
	}
	body := decodeBody(t, w)
	movies, _ := body["movies"].([]interface{})
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d\n", len(movies))
	}
	item, _ := movies[0].(map[string]interface{})
	if item["name"] != "Alpha" {
		t.Errorf("bad item %+v\n", item)
	}
	// short form has no personnel
	if _, ok := item["actors"]; ok {
		t.Error("list items should be short form")
	}
	if _, ok := controls(t, body)["add_movie"]; !ok {
		t.Error("add-movie control missing")
	}
}

func TestMovieUpdate(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "PUT", "/api/movies/Alpha/",
		`{"name": "Alpha", "genre": "Drama", "actors": ["Bob"]}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("got %d: %s\n", w.Code, w.Body.String())
	}

	w = doRequest(t, h, "GET", "/api/movies/Alpha/", "")
	body := decodeBody(t, w)
	if body["genre"] != "Drama" {
		t.Errorf("bad genre %v\n", body["genre"])
	}
	actors, _ := body["actors"].([]interface{})
	if len(actors) != 1 || actors[0] != "Bob" {
		t.Errorf("actors should be replaced: %+v\n", body["actors"])
	}
}

func TestMovieDelete(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "DELETE", "/api/movies/Alpha/", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("got %d\n", w.Code)
	}
	w = doRequest(t, h, "GET", "/api/movies/Alpha/", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted movie got %d\n", w.Code)
	}
	// Ann had no other movies
	w = doRequest(t, h, "GET", "/api/actors/", "")
	body := decodeBody(t, w)
	actors, _ := body["actors"].([]interface{})
	if len(actors) != 0 {
		t.Errorf("orphan actor should be gone: %+v\n", actors)
	}
}

func TestActors(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "GET", "/api/actors/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d\n", w.Code)
	}
	body := decodeBody(t, w)
	actors, _ := body["actors"].([]interface{})
	if len(actors) != 1 {
		t.Fatalf("expected 1 actor, got %d\n", len(actors))
	}
	ann, _ := actors[0].(map[string]interface{})
	if ann["name"] != "Ann" {
		t.Errorf("bad actor %+v\n", ann)
	}
	movies, _ := ann["movies"].([]interface{})
	if len(movies) != 1 || movies[0] != "Alpha" {
		t.Errorf("bad actor movies %+v\n", ann["movies"])
	}
}

func TestPersonnelReadOnly(t *testing.T) {
	h := testHandler(t)

	for _, path := range []string{"/api/actors/", "/api/directors/", "/api/writers/"} {
		for _, method := range []string{"POST", "PUT", "DELETE"} {
			w := doRequest(t, h, method, path, `{"name": "x"}`)
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("%s %s got %d\n", method, path, w.Code)
			}
			if allow := w.Header().Get("Allow"); allow != "GET" {
				t.Errorf("%s %s bad Allow %q\n", method, path, allow)
			}
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "POST", "/api/movies/Alpha/", alphaJson)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST on item got %d\n", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET, PUT, DELETE" {
		t.Errorf("bad Allow %q\n", allow)
	}

	w = doRequest(t, h, "DELETE", "/api/movies/", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE on collection got %d\n", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("bad Allow %q\n", allow)
	}
}

func TestReviews(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	review := `{"reviewer": "rev", "review_text": "good", "score": 8.5}`
	w := doRequest(t, h, "POST", "/api/movies/Alpha/reviews/", review)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST review got %d: %s\n", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/movies/Alpha/reviews/rev/" {
		t.Errorf("bad location %s\n", loc)
	}

	// same reviewer again conflicts
	w = doRequest(t, h, "POST", "/api/movies/Alpha/reviews/", review)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate reviewer got %d\n", w.Code)
	}

	// score out of range
	w = doRequest(t, h, "POST", "/api/movies/Alpha/reviews/",
		`{"reviewer": "other", "score": 10.5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad score got %d\n", w.Code)
	}

	w = doRequest(t, h, "GET", "/api/movies/Alpha/reviews/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET reviews got %d\n", w.Code)
	}
	body := decodeBody(t, w)
	reviews, _ := body["reviews"].([]interface{})
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d\n", len(reviews))
	}
	if href := controlHref(t, body, "movie"); href != "/api/movies/Alpha/" {
		t.Errorf("bad movie href %s\n", href)
	}

	w = doRequest(t, h, "GET", "/api/movies/Alpha/reviews/rev/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET review got %d\n", w.Code)
	}
	body = decodeBody(t, w)
	if body["reviewer"] != "rev" || body["score"] != 8.5 || body["review_text"] != "good" {
		t.Errorf("bad review body %+v\n", body)
	}

	// reviews of an unknown movie
	w = doRequest(t, h, "GET", "/api/movies/Missing/reviews/", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown movie reviews got %d\n", w.Code)
	}
}

func TestReviewUpdateDelete(t *testing.T) {
	h := testHandler(t)
	postAlpha(t, h)

	w := doRequest(t, h, "POST", "/api/movies/Alpha/reviews/",
		`{"reviewer": "rev", "score": 5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST review got %d\n", w.Code)
	}

	w = doRequest(t, h, "PUT", "/api/movies/Alpha/reviews/rev/",
		`{"reviewer": "rev", "score": 9, "review_text": "better"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("PUT review got %d: %s\n", w.Code, w.Body.String())
	}

	w = doRequest(t, h, "GET", "/api/movies/Alpha/reviews/rev/", "")
	body := decodeBody(t, w)
	if body["score"] != 9.0 || body["review_text"] != "better" {
		t.Errorf("review not replaced: %+v\n", body)
	}

	w = doRequest(t, h, "DELETE", "/api/movies/Alpha/reviews/rev/", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE review got %d\n", w.Code)
	}
	w = doRequest(t, h, "GET", "/api/movies/Alpha/reviews/rev/", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted review got %d\n", w.Code)
	}
}

func TestEscapedNames(t *testing.T) {
	h := testHandler(t)

	w := doRequest(t, h, "POST", "/api/movies/", `{"name": "Alpha Beta"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d\n", w.Code)
	}
	loc := w.Header().Get("Location")
	if loc != "/api/movies/Alpha%20Beta/" {
		t.Errorf("bad location %s\n", loc)
	}
	w = doRequest(t, h, "GET", loc, "")
	if w.Code != http.StatusOK {
		t.Errorf("GET escaped name got %d\n", w.Code)
	}
}
