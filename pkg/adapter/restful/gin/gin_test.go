// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/dealer-web/internal/test/dbcontainer"
	"github.com/momeni/dealer-web/pkg/adapter/config"
	"github.com/momeni/dealer-web/pkg/adapter/db/postgres"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin"
	"github.com/momeni/dealer-web/pkg/adapter/restful/gin/routes"
	"github.com/momeni/dealer-web/pkg/core/model"
	"github.com/momeni/dealer-web/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return postgres.InitSchema(ctx, c)
		},
	)
	igts.Require().NoError(err, "failed to create schema contents")

	tmp := igts.T().TempDir()
	secretFile := filepath.Join(tmp, "token-secret")
	err = os.WriteFile(secretFile, []byte("integration-secret"), 0o600)
	igts.Require().NoError(err, "failed to write token secret file")
	iters := 4096 // the minimum, keeping password hashing fast
	c := &config.Config{
		Auth: config.Auth{
			Issuer:          "dlrweb",
			SecretFile:      secretFile,
			ScramIterations: &iters,
		},
		Images: config.Images{
			Dir:   filepath.Join(tmp, "images"),
			Route: "/images",
		},
	}
	err = c.Auth.ValidateAndNormalize()
	igts.Require().NoError(err, "failed to normalize auth settings")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Gin, igts.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
}

type sessionResp struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

type messageResp struct {
	Message string `json:"message"`
}

// sendJSON serializes body (when non-nil) and routes the request
// through the engine, decoding the response body into res (when
// non-nil). An empty token leaves the Authorization header out.
func (igts *IntegrationGinTestSuite) sendJSON(
	method, path, token string, body, res any,
) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		igts.Require().NoError(err, "cannot marshal request body")
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, "/api/dlrweb/v1"+path, r)
	igts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		err = json.Unmarshal(w.Body.Bytes(), res)
		igts.NoError(err, "body is not json: %s", w.Body.String())
	}
	return w
}

// registerUser creates an account through the REST API and returns
// its session token.
func (igts *IntegrationGinTestSuite) registerUser(
	name, email, pass string,
) (model.User, string) {
	res := &sessionResp{}
	w := igts.sendJSON(
		http.MethodPost, "/users", "",
		map[string]string{
			"name": name, "email": email, "password": pass,
		},
		res,
	)
	igts.Require().Equal(201, w.Code, "registration failed")
	igts.Require().NotEmpty(res.Token, "missing session token")
	return res.User, res.Token
}

// makeAdmin flips the is_admin flag directly in the database; since
// the authentication middleware reloads the acting user per request,
// previously issued tokens gain the admin role immediately.
func (igts *IntegrationGinTestSuite) makeAdmin(userID uuid.UUID) {
	err := igts.Pool.Conn(
		igts.Ctx, func(ctx context.Context, c repo.Conn) error {
			count, err := c.Exec(
				ctx,
				`UPDATE users SET is_admin=TRUE WHERE uid=$1`,
				userID,
			)
			igts.Equal(int64(1), count, "tried to UPDATE one user")
			return err
		},
	)
	igts.Require().NoError(err, "failed to promote user to admin")
}

func (igts *IntegrationGinTestSuite) newAdmin(email string) string {
	u, token := igts.registerUser("Admin", email, "Secret-Pass-1")
	igts.makeAdmin(u.ID)
	return token
}

// vehicleForm routes a multipart vehicle creation or update through
// the engine. Each images entry becomes one file part of the "images"
// field, declared as image/png.
func (igts *IntegrationGinTestSuite) vehicleForm(
	method, path, token string,
	fields map[string]string, images map[string][]byte, res any,
) *httptest.ResponseRecorder {
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	for k, v := range fields {
		igts.Require().NoError(
			mw.WriteField(k, v), "cannot write %q field", k,
		)
	}
	for name, content := range images {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(
			`form-data; name="images"; filename="%s"`, name,
		))
		h.Set("Content-Type", "image/png")
		p, err := mw.CreatePart(h)
		igts.Require().NoError(err, "cannot create %q part", name)
		_, err = p.Write(content)
		igts.Require().NoError(err, "cannot write %q part", name)
	}
	igts.Require().NoError(mw.Close(), "cannot finalize form")
	req, err := http.NewRequest(method, "/api/dlrweb/v1"+path, &b)
	igts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		err = json.Unmarshal(w.Body.Bytes(), res)
		igts.NoError(err, "body is not json: %s", w.Body.String())
	}
	return w
}

func (igts *IntegrationGinTestSuite) TestAuthGates() {
	res := &messageResp{}
	w := igts.sendJSON(http.MethodGet, "/users/profile", "", nil, res)
	igts.Equal(401, w.Code)
	igts.Equal("authorization token is required", res.Message)

	res = &messageResp{}
	w = igts.sendJSON(
		http.MethodGet, "/users/profile", "not.a.token", nil, res,
	)
	igts.Equal(401, w.Code)
	igts.Equal("invalid or expired token", res.Message)

	_, token := igts.registerUser(
		"Plain User", "plain@example.org", "Secret-Pass-1",
	)
	res = &messageResp{}
	w = igts.sendJSON(http.MethodGet, "/users", token, nil, res)
	igts.Equal(403, w.Code)
	igts.Equal("admin access is required", res.Message)
}

func (igts *IntegrationGinTestSuite) TestRegisterLoginProfile() {
	u, token := igts.registerUser(
		"Jamie", "jamie@example.org", "Secret-Pass-1",
	)
	igts.Equal("Jamie", u.Name)
	igts.Empty(u.PasswordHash, "hash must not leak in responses")
	igts.False(u.IsAdmin)

	res := &messageResp{}
	w := igts.sendJSON(
		http.MethodPost, "/users/login", "",
		map[string]string{
			"email": "jamie@example.org", "password": "wrong",
		},
		res,
	)
	igts.Equal(401, w.Code)
	igts.NotEmpty(res.Message)

	login := &sessionResp{}
	w = igts.sendJSON(
		http.MethodPost, "/users/login", "",
		map[string]string{
			"email":    "jamie@example.org",
			"password": "Secret-Pass-1",
		},
		login,
	)
	igts.Equal(200, w.Code)
	igts.Equal(u.ID, login.User.ID)

	profile := &model.User{}
	w = igts.sendJSON(
		http.MethodGet, "/users/profile", token, nil, profile,
	)
	igts.Equal(200, w.Code)
	igts.Equal(u.ID, profile.ID)
	igts.Empty(profile.PasswordHash)

	dup := &messageResp{}
	w = igts.sendJSON(
		http.MethodPost, "/users", "",
		map[string]string{
			"name":     "Jamie Again",
			"email":    "jamie@example.org",
			"password": "Secret-Pass-2",
		},
		dup,
	)
	igts.Equal(409, w.Code)
	igts.Equal("email is already registered", dup.Message)
}

func (igts *IntegrationGinTestSuite) TestVehicleLifecycle() {
	admin := igts.newAdmin("vehicle-admin@example.org")

	noAuth := &messageResp{}
	w := igts.vehicleForm(
		http.MethodPost, "/vehicles", "",
		map[string]string{
			"make": "Honda", "model": "Civic",
			"year": "2021", "status": "for-sale",
		},
		nil, noAuth,
	)
	igts.Equal(401, w.Code)

	v := &model.Vehicle{}
	w = igts.vehicleForm(
		http.MethodPost, "/vehicles", admin,
		map[string]string{
			"make": "Honda", "model": "Civic", "year": "2021",
			"class": "compact car", "price": "23000",
			"status": "for-sale",
		},
		map[string][]byte{"front.png": []byte("png-bytes")},
		v,
	)
	igts.Require().Equal(
		201, w.Code, "creation failed: %s", w.Body.String(),
	)
	igts.Equal("Honda", v.Make)
	igts.True(v.Available, "availability defaults to true")
	igts.Require().Len(v.Images, 1)

	// the stored file is served under the static images route
	req, err := http.NewRequest(
		http.MethodGet, "/images/"+v.Images[0], nil,
	)
	igts.Require().NoError(err, "cannot create GET request")
	iw := httptest.NewRecorder()
	igts.Gin.ServeHTTP(iw, req)
	igts.Equal(200, iw.Code)
	igts.Equal("png-bytes", iw.Body.String())

	vp := &model.VehiclePage{}
	w = igts.sendJSON(
		http.MethodGet, "/vehicles?keyword=civic", "", nil, vp,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(vp.Vehicles, 1)
	igts.Equal(v.ID, vp.Vehicles[0].ID)
	igts.Equal(int64(1), vp.Count)

	v2 := &model.Vehicle{}
	w = igts.vehicleForm(
		http.MethodPut, "/vehicles/"+v.ID.String(), admin,
		map[string]string{
			"price":      "21000",
			"keepImages": v.Images[0],
		},
		map[string][]byte{"rear.png": []byte("more-bytes")},
		v2,
	)
	igts.Equal(200, w.Code)
	igts.Equal(21000.0, v2.Price)
	igts.Equal("Civic", v2.Model, "absent fields are unchanged")
	igts.Require().Len(v2.Images, 2)
	igts.Equal(v.Images[0], v2.Images[0])

	w = igts.sendJSON(
		http.MethodDelete, "/vehicles/"+v.ID.String(), admin,
		nil, nil,
	)
	igts.Equal(204, w.Code)

	gone := &messageResp{}
	w = igts.sendJSON(
		http.MethodGet, "/vehicles/"+v.ID.String(), "", nil, gone,
	)
	igts.Equal(404, w.Code)
	igts.Equal("vehicle not found", gone.Message)
}

func (igts *IntegrationGinTestSuite) TestRequestAcceptance() {
	admin := igts.newAdmin("request-admin@example.org")
	_, customer := igts.registerUser(
		"Customer", "customer@example.org", "Secret-Pass-1",
	)

	v := &model.Vehicle{}
	w := igts.vehicleForm(
		http.MethodPost, "/vehicles", admin,
		map[string]string{
			"make": "Toyota", "model": "Corolla", "year": "2020",
			"price": "19000", "status": "for-sale",
		},
		nil, v,
	)
	igts.Require().Equal(201, w.Code, "creation failed")

	r := &model.Request{}
	w = igts.sendJSON(
		http.MethodPost, "/requests", customer,
		map[string]string{
			"vehicleId":   v.ID.String(),
			"requestType": "purchase",
			"message":     "cash buyer",
		},
		r,
	)
	igts.Require().Equal(
		201, w.Code, "request failed: %s", w.Body.String(),
	)
	igts.Equal(model.RequestStatusPending, r.Status)

	mine := &[]model.Request{}
	w = igts.sendJSON(
		http.MethodGet, "/requests/myRequests", customer, nil, mine,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(*mine, 1)
	igts.Require().NotNil((*mine)[0].Vehicle, "vehicle join missing")
	igts.Equal("Corolla", (*mine)[0].Vehicle.Model)

	accepted := &model.Request{}
	w = igts.sendJSON(
		http.MethodPut, "/requests/"+r.ID.String(), admin,
		map[string]string{"status": "accepted"},
		accepted,
	)
	igts.Equal(200, w.Code)
	igts.Equal(model.RequestStatusAccepted, accepted.Status)

	after := &model.Vehicle{}
	w = igts.sendJSON(
		http.MethodGet, "/vehicles/"+v.ID.String(), "", nil, after,
	)
	igts.Equal(200, w.Code)
	igts.False(after.Available, "acceptance must reserve the vehicle")

	// repeating the same decision is a no-op
	w = igts.sendJSON(
		http.MethodPut, "/requests/"+r.ID.String(), admin,
		map[string]string{"status": "accepted"},
		accepted,
	)
	igts.Equal(200, w.Code)

	rejectedFlip := &messageResp{}
	w = igts.sendJSON(
		http.MethodPut, "/requests/"+r.ID.String(), admin,
		map[string]string{"status": "rejected"},
		rejectedFlip,
	)
	igts.Equal(400, w.Code, "a decided request must stay decided")

	tooLate := &messageResp{}
	w = igts.sendJSON(
		http.MethodPost, "/requests", customer,
		map[string]string{
			"vehicleId":   v.ID.String(),
			"requestType": "rental",
		},
		tooLate,
	)
	igts.Equal(400, w.Code)
	igts.Equal("vehicle is not available", tooLate.Message)

	info := &model.Request{}
	w = igts.sendJSON(
		http.MethodPost, "/requests", customer,
		map[string]string{
			"vehicleId":   v.ID.String(),
			"requestType": "information",
			"message":     "is it still visible?",
		},
		info,
	)
	igts.Equal(
		201, w.Code,
		"information requests ignore the availability flag",
	)
}
