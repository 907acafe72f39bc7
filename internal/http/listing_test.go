package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingLifecycle(t *testing.T) {
	app := newApp(t)
	bob := loggedIn(t, app, "bob@staynest.test")
	alice := loggedIn(t, app, "alice@staynest.test")

	resp, body := bob.do("POST", "/api/listing/add", map[string]any{
		"title": "Lake House", "city": "Udaipur", "landMark": "Fateh Sagar",
		"category": "lake", "rent": 140, "totalQuantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "%v", body)
	l := body["listing"].(map[string]any)
	id := l["id"].(string)
	assert.EqualValues(t, 2, l["availableQuantity"])
	assert.Equal(t, false, l["isBooked"])
	assert.Equal(t, "u-bob", l["host"])

	resp, body = alice.do("GET", "/api/listing/get?category=lake", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["listings"], 1)

	resp, body = alice.do("GET", "/api/listing/findlistingbyid/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lake House", body["listing"].(map[string]any)["title"])

	resp, _ = alice.do("PUT", "/api/listing/update/"+id+"/quantity", map[string]any{"totalQuantity": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = alice.do("POST", "/api/booking/create/"+id, stay())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = bob.do("PUT", "/api/listing/update/"+id+"/quantity", map[string]any{"totalQuantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.EqualValues(t, 2, body["listing"].(map[string]any)["availableQuantity"])

	resp, _ = bob.do("PUT", "/api/listing/update/"+id+"/quantity", map[string]any{"totalQuantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = alice.do("DELETE", "/api/listing/delete/"+id, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = bob.do("DELETE", "/api/listing/delete/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = alice.do("GET", "/api/listing/findlistingbyid/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Listing is not found", body["message"])

	// alice's booking on the deleted listing was cancelled with it
	resp, body = alice.do("GET", "/api/user/currentuser", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["user"].(map[string]any)["booking"])
}

func TestListingAddValidation(t *testing.T) {
	app := newApp(t)
	bob := loggedIn(t, app, "bob@staynest.test")

	resp, _ := bob.do("POST", "/api/listing/add", map[string]any{"title": "x", "city": "y", "totalQuantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = bob.do("POST", "/api/listing/add", map[string]any{"city": "y", "totalQuantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	anon := newClient(t, app)
	resp, _ = anon.do("POST", "/api/listing/add", map[string]any{"title": "x", "city": "y", "totalQuantity": 1})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFavorites(t *testing.T) {
	app := newApp(t)
	alice := loggedIn(t, app, "alice@staynest.test")

	resp, body := alice.do("POST", "/api/user/addfavorite/lst-cabin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "%v", body)
	assert.Equal(t, []any{"lst-cabin"}, body["favorites"])

	resp, body = alice.do("POST", "/api/user/addfavorite/lst-cabin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"lst-cabin"}, body["favorites"])

	resp, body = alice.do("POST", "/api/user/addfavorite/lst-nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Listing is not found", body["message"])

	resp, body = alice.do("GET", "/api/user/favorites", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	favs := body["favorites"].([]any)
	require.Len(t, favs, 1)
	assert.Equal(t, "Pine Cabins", favs[0].(map[string]any)["title"])

	resp, body = alice.do("POST", "/api/user/removefavorite/lst-cabin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["favorites"])
}
