package userdelivery

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-ppob/wallet/internal/domain"
	"github.com/go-ppob/wallet/internal/middleware"
	"github.com/go-ppob/wallet/pkg/configpkg"
	"github.com/go-ppob/wallet/pkg/errorspkg"
	"github.com/go-ppob/wallet/pkg/randompkg"
	"github.com/go-ppob/wallet/pkg/tokenpkg"
	"github.com/go-ppob/wallet/pkg/web"
)

func randomProfile() domain.Profile {
	return domain.Profile{
		Email:     randompkg.Email(),
		FirstName: randompkg.Name(),
		LastName:  randompkg.Name(),
	}
}

func newTestServer(t *testing.T, config configpkg.Config) (*gin.Engine, *MockService, tokenpkg.Maker) {
	t.Helper()

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	userService := NewMockService(ctrl)
	userHandler := NewHandler(userService, tokenMaker, config)

	server := gin.Default()
	server.POST("/registration", userHandler.Registration)
	server.POST("/login", userHandler.Login)

	authorized := server.Group("/").Use(middleware.AuthMiddleware(tokenMaker))
	authorized.GET("/profile", userHandler.GetProfile)
	authorized.PUT("/profile/update", userHandler.UpdateProfile)
	authorized.PUT("/profile/image", userHandler.UpdateProfileImage)

	return server, userService, tokenMaker
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) web.Response {
	t.Helper()

	var resp web.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	return resp
}

func TestRegistrationAPI(t *testing.T) {
	testProfile := randomProfile()
	testPassword := randompkg.String(10)

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(userService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "InvalidEmail",
			requestBody: gin.H{
				"email":      "not-an-email",
				"first_name": testProfile.FirstName,
				"last_name":  testProfile.LastName,
				"password":   testPassword,
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				require.Equal(t, web.StatusBadRequest, decodeResponse(t, recorder).Status)
			},
		},
		{
			name: "ShortPassword",
			requestBody: gin.H{
				"email":      testProfile.Email,
				"first_name": testProfile.FirstName,
				"last_name":  testProfile.LastName,
				"password":   "short",
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				require.Equal(t, web.StatusBadRequest, decodeResponse(t, recorder).Status)
			},
		},
		{
			name: "EmailAlreadyRegistered",
			requestBody: gin.H{
				"email":      testProfile.Email,
				"first_name": testProfile.FirstName,
				"last_name":  testProfile.LastName,
				"password":   testPassword,
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Create(gomock.Any(), gomock.Eq(testProfile.Email), gomock.Eq(testPassword),
						gomock.Eq(testProfile.FirstName), gomock.Eq(testProfile.LastName)).
					Times(1).
					Return(domain.Profile{}, domain.ErrEmailAlreadyExists)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)

				resp := decodeResponse(t, recorder)
				require.Equal(t, web.StatusBadRequest, resp.Status)
				require.Equal(t, "Email already registered", resp.Message)
			},
		},
		{
			name: "InternalError",
			requestBody: gin.H{
				"email":      testProfile.Email,
				"first_name": testProfile.FirstName,
				"last_name":  testProfile.LastName,
				"password":   testPassword,
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Profile{}, errorspkg.ErrInternal)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
		{
			name: "OK",
			requestBody: gin.H{
				"email":      testProfile.Email,
				"first_name": testProfile.FirstName,
				"last_name":  testProfile.LastName,
				"password":   testPassword,
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Create(gomock.Any(), gomock.Eq(testProfile.Email), gomock.Eq(testPassword),
						gomock.Eq(testProfile.FirstName), gomock.Eq(testProfile.LastName)).
					Times(1).
					Return(testProfile, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				resp := decodeResponse(t, recorder)
				require.Equal(t, web.StatusSuccess, resp.Status)
				require.Equal(t, "Registration successful, please login", resp.Message)
				require.Nil(t, resp.Data)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, userService, _ := newTestServer(t, configpkg.Config{})
			tc.buildStubs(userService)

			recorder := httptest.NewRecorder()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/registration", bytes.NewReader(body))
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}

func TestLoginAPI(t *testing.T) {
	testProfile := randomProfile()
	testPassword := randompkg.String(10)
	config := configpkg.Config{AccessTokenDuration: time.Minute}

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(userService *MockService)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder, tokenMaker tokenpkg.Maker)
	}{
		{
			name:        "MissingPassword",
			requestBody: gin.H{"email": testProfile.Email},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().CheckPassword(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, tokenMaker tokenpkg.Maker) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "WrongPassword",
			requestBody: gin.H{"email": testProfile.Email, "password": testPassword},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(testProfile.Email), gomock.Eq(testPassword)).
					Times(1).
					Return(domain.Profile{}, domain.ErrWrongPassword)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, tokenMaker tokenpkg.Maker) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)

				resp := decodeResponse(t, recorder)
				require.Equal(t, web.StatusWrongCredentials, resp.Status)
				require.Equal(t, "Wrong email or password", resp.Message)
			},
		},
		{
			name:        "OK",
			requestBody: gin.H{"email": testProfile.Email, "password": testPassword},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					CheckPassword(gomock.Any(), gomock.Eq(testProfile.Email), gomock.Eq(testPassword)).
					Times(1).
					Return(testProfile, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder, tokenMaker tokenpkg.Maker) {
				require.Equal(t, http.StatusOK, recorder.Code)

				resp := decodeResponse(t, recorder)
				require.Equal(t, web.StatusSuccess, resp.Status)
				require.Equal(t, "Login Success", resp.Message)

				data, ok := resp.Data.(map[string]any)
				require.True(t, ok)

				token, ok := data["token"].(string)
				require.True(t, ok)

				payload, err := tokenMaker.VerifyToken(token)
				require.NoError(t, err)
				require.Equal(t, testProfile.Email, payload.Email)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, userService, tokenMaker := newTestServer(t, config)
			tc.buildStubs(userService)

			recorder := httptest.NewRecorder()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)
			tc.checkResponse(t, recorder, tokenMaker)
		})
	}
}

func TestGetProfileAPI(t *testing.T) {
	testProfile := randomProfile()

	testCases := []struct {
		name          string
		setupAuth     func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker)
		buildStubs    func(userService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
				require.Equal(t, web.StatusUnauthenticated, decodeResponse(t, recorder).Status)
			},
		},
		{
			name: "UserNotFound",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, testProfile.Email, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().GetProfile(gomock.Any(), gomock.Eq(testProfile.Email)).
					Times(1).
					Return(domain.Profile{}, domain.ErrUserNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
				require.Equal(t, web.StatusUnauthenticated, decodeResponse(t, recorder).Status)
			},
		},
		{
			name: "OK",
			setupAuth: func(t *testing.T, request *http.Request, tokenMaker tokenpkg.Maker) {
				err := middleware.AddAuthorization(request, tokenMaker, middleware.AuthTypeBearer, testProfile.Email, time.Minute)
				require.NoError(t, err)
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().GetProfile(gomock.Any(), gomock.Eq(testProfile.Email)).
					Times(1).
					Return(testProfile, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				resp := decodeResponse(t, recorder)
				require.Equal(t, web.StatusSuccess, resp.Status)

				data, ok := resp.Data.(map[string]any)
				require.True(t, ok)
				require.Equal(t, testProfile.Email, data["email"])
				require.Equal(t, testProfile.FirstName, data["first_name"])
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, userService, tokenMaker := newTestServer(t, configpkg.Config{})
			tc.buildStubs(userService)

			recorder := httptest.NewRecorder()

			req, err := http.NewRequest(http.MethodGet, "/profile", nil)
			require.NoError(t, err)

			tc.setupAuth(t, req, tokenMaker)
			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}

func TestUpdateProfileAPI(t *testing.T) {
	testProfile := randomProfile()

	updated := testProfile
	updated.FirstName = randompkg.Name()
	updated.LastName = randompkg.Name()

	server, userService, tokenMaker := newTestServer(t, configpkg.Config{})

	userService.EXPECT().
		UpdateProfile(gomock.Any(), gomock.Eq(testProfile.Email), gomock.Eq(updated.FirstName), gomock.Eq(updated.LastName)).
		Times(1).
		Return(updated, nil)

	recorder := httptest.NewRecorder()

	body, err := json.Marshal(gin.H{"first_name": updated.FirstName, "last_name": updated.LastName})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, "/profile/update", bytes.NewReader(body))
	require.NoError(t, err)

	err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, testProfile.Email, time.Minute)
	require.NoError(t, err)

	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeResponse(t, recorder)
	require.Equal(t, web.StatusSuccess, resp.Status)
	require.Equal(t, "Update Profile Success", resp.Message)
}

func multipartImage(t *testing.T, fieldName, fileName string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)

	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUpdateProfileImageAPI(t *testing.T) {
	testProfile := randomProfile()
	config := configpkg.Config{
		BaseURL:   "http://localhost:8080",
		UploadDir: t.TempDir(),
	}

	testCases := []struct {
		name          string
		fileName      string
		buildStubs    func(userService *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:     "InvalidImageFormat",
			fileName: "avatar.gif",
			buildStubs: func(userService *MockService) {
				userService.EXPECT().UpdateProfileImage(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)

				resp := decodeResponse(t, recorder)
				require.Equal(t, web.StatusBadRequest, resp.Status)
				require.Equal(t, "Invalid image format", resp.Message)
			},
		},
		{
			name:     "OK",
			fileName: "avatar.png",
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					UpdateProfileImage(gomock.Any(), gomock.Eq(testProfile.Email), gomock.Any()).
					Times(1).
					DoAndReturn(func(ctx context.Context, email, imageURL string) (domain.Profile, error) {
						require.Contains(t, imageURL, config.BaseURL)
						require.Contains(t, imageURL, ".png")

						updated := testProfile
						updated.ProfileImage = imageURL

						return updated, nil
					})
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				resp := decodeResponse(t, recorder)
				require.Equal(t, web.StatusSuccess, resp.Status)
				require.Equal(t, "Update Profile Image Success", resp.Message)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server, userService, tokenMaker := newTestServer(t, config)
			tc.buildStubs(userService)

			recorder := httptest.NewRecorder()

			body, contentType := multipartImage(t, "file", tc.fileName)

			req, err := http.NewRequest(http.MethodPut, "/profile/image", body)
			require.NoError(t, err)
			req.Header.Set("Content-Type", contentType)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, testProfile.Email, time.Minute)
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}
