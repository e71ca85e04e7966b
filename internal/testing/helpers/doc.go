// Package helpers provides HTTP and database test utilities for the API.
//
// # Tokens
//
//	token := helpers.AdminToken(t, "admin@example.com")
//	expired := helpers.ExpiredAdminToken(t, "admin@example.com")
//
// Both are signed by NewTestJWTService, which the code under test must use
// to verify them.
//
// # Requests
//
//	resp := helpers.NewRequest(t, http.MethodPost, "/api/notice").
//	    WithBody(req).
//	    WithBearer(token).
//	    Do(router)
//
// # Assertions
//
//	helpers.AssertStatus(t, resp, http.StatusCreated)
//	helpers.DecodeData(t, resp, &notice)
//	helpers.AssertFailure(t, resp, http.StatusNotFound, "not found")
//	helpers.AssertRecordNotExists(t, db, "notice", notice.ID)
package helpers
