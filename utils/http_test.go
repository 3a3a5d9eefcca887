package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUnitWriteJSONWithStatus(t *testing.T) {
	Convey("Data is written as json with the supplied status", t, func() {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		WriteJSONWithStatus(w, req, NewMessageResponse("resource not found"), http.StatusNotFound)

		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
		So(w.Body.String(), ShouldEqual, `{"message":"resource not found"}`+"\n")
	})
}
