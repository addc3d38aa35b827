package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/oklog/ulid/v2"
)

var (
	db         *sqlx.DB
	jwtSecret  []byte
	mailer     Mailer
	appBaseURL string
	// for request id ULIDs
	entropy = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func getEnv(key string, defaultValue string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return defaultValue
}

func connectDB() (*sqlx.DB, error) {
	config := mysql.NewConfig()
	config.Net = "tcp"
	config.Addr = getEnv("LINKDECK_DB_HOST", "127.0.0.1") + ":" + getEnv("LINKDECK_DB_PORT", "3306")
	config.User = getEnv("LINKDECK_DB_USER", "linkdeck")
	config.Passwd = getEnv("LINKDECK_DB_PASSWORD", "linkdeck")
	config.DBName = getEnv("LINKDECK_DB_NAME", "linkdeck")
	config.ParseTime = true

	dsn := config.FormatDSN()
	return sqlx.Open("mysql", dsn)
}

func runMigrations() error {
	dsn := fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
		getEnv("LINKDECK_DB_USER", "linkdeck"),
		getEnv("LINKDECK_DB_PASSWORD", "linkdeck"),
		getEnv("LINKDECK_DB_HOST", "127.0.0.1"),
		getEnv("LINKDECK_DB_PORT", "3306"),
		getEnv("LINKDECK_DB_NAME", "linkdeck"),
	)
	m, err := migrate.New("file://"+getEnv("LINKDECK_MIGRATIONS", "migrations"), dsn)
	if err != nil {
		return fmt.Errorf("error migrate.New: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("error migrate.Up: %w", err)
	}
	return nil
}

func requestID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return ""
	}
	return id.String()
}

func main() {
	// .env is optional; deployments may set the environment directly
	godotenv.Load()

	e := echo.New()
	e.Debug = getEnv("LINKDECK_DEBUG", "") != ""
	if e.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: requestID,
	}))

	jwtSecret = []byte(getEnv("JWT_SECRET", ""))
	if len(jwtSecret) == 0 {
		e.Logger.Fatal("JWT_SECRET is required")
		return
	}
	appBaseURL = getEnv("APP_BASE_URL", "http://localhost:3000")

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		e.Logger.Fatalf("bad SMTP_PORT: %v", err)
		return
	}
	mailer = newSMTPMailer(
		getEnv("SMTP_HOST", "127.0.0.1"),
		smtpPort,
		getEnv("SMTP_USER", ""),
		getEnv("SMTP_PASSWORD", ""),
		getEnv("MAIL_FROM", "no-reply@linkdeck.local"),
	)

	db, err = connectDB()
	if err != nil {
		e.Logger.Fatalf("failed to connect db: %v", err)
		return
	}
	db.SetMaxOpenConns(10)
	defer db.Close()

	if err := runMigrations(); err != nil {
		e.Logger.Fatalf("failed to run migrations: %v", err)
		return
	}

	e.POST("/api/signup", apiSignupHandler)
	e.POST("/api/login", apiLoginHandler)
	e.POST("/api/forgot-password", apiForgotPasswordHandler)
	e.POST("/api/reset-password", apiResetPasswordHandler)
	e.GET("/api/public/:key", apiPublicKeyHandler)
	e.GET("/api/public/contents/:userId", apiPublicContentsHandler)
	e.GET("/api/public/playlists/:userId", apiPublicPlaylistsHandler)
	e.GET("/api/public/playlist_contents/:playlistId", apiPublicPlaylistContentsHandler)

	// every private route hangs off the guarded group
	api := e.Group("/api", authRequired)
	api.GET("/profile", apiGetProfileHandler)
	api.PUT("/profile", apiUpdateProfileHandler)
	api.POST("/contents", apiAddContentHandler)
	api.GET("/contents", apiContentsHandler)
	api.DELETE("/contents", apiDeleteContentHandler)
	api.POST("/playlists", apiAddPlaylistHandler)
	api.GET("/playlists", apiPlaylistsHandler)
	api.DELETE("/playlists", apiDeletePlaylistHandler)
	api.POST("/playlist_contents", apiAddPlaylistContentHandler)
	api.GET("/playlist_contents", apiPlaylistContentsHandler)

	port := getEnv("SERVER_APP_PORT", "3000")
	e.Logger.Infof("starting linkdeck server on : %s ...", port)
	e.Logger.Fatal(e.Start(":" + port))
}

func errorResponse(c echo.Context, code int, message string) error {
	c.Logger().Debugf("error: status=%d, message=%s", code, message)

	body := BasicResponse{
		Success: false,
		Message: message,
	}
	if err := c.JSON(code, body); err != nil {
		return fmt.Errorf("error returns JSON at errorResponse: %w", err)
	}
	return nil
}

func isDuplicateEntryErr(err error) bool {
	merr, ok := err.(*mysql.MySQLError)
	return ok && merr.Number == 1062
}

type connOrTx interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func getUserByEmail(ctx context.Context, db connOrTx, email string) (*UserRow, error) {
	var row UserRow
	if err := db.GetContext(ctx, &row, "SELECT * FROM users WHERE `email` = ?", email); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error Get user by email=%s: %w", email, err)
	}
	return &row, nil
}

func getAdminUserByEmail(ctx context.Context, db connOrTx, email string) (*UserRow, error) {
	var row UserRow
	if err := db.GetContext(
		ctx,
		&row,
		"SELECT * FROM users WHERE `email` = ? AND `role` = 'admin'",
		email,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error Get admin user by email=%s: %w", email, err)
	}
	return &row, nil
}

func getUserIDBySharingKey(ctx context.Context, db connOrTx, key string) (int64, bool, error) {
	var id int64
	if err := db.GetContext(ctx, &id, "SELECT id FROM users WHERE `unique_key` = ?", key); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("error Get user id by unique_key: %w", err)
	}
	return id, true, nil
}

func listContentsByUserID(ctx context.Context, db connOrTx, userID int64) ([]ContentRow, error) {
	var rows []ContentRow
	if err := db.SelectContext(
		ctx,
		&rows,
		"SELECT * FROM contents WHERE `user_id` = ?",
		userID,
	); err != nil {
		return nil, fmt.Errorf("error Select contents by user_id=%d: %w", userID, err)
	}
	return rows, nil
}

func listPlaylistsByUserID(ctx context.Context, db connOrTx, userID int64) ([]PlaylistRow, error) {
	var rows []PlaylistRow
	if err := db.SelectContext(
		ctx,
		&rows,
		"SELECT * FROM playlist WHERE `user_id` = ?",
		userID,
	); err != nil {
		return nil, fmt.Errorf("error Select playlist by user_id=%d: %w", userID, err)
	}
	return rows, nil
}

const playlistContentsJoinSelect = `SELECT pc.id,
       pc.content_id,
       c.url AS content_url,
       c.name AS content_name,
       pc.playlist_id,
       p.name AS playlist_name,
       pc.user_id,
       pc.created_at,
       pc.updated_at
  FROM playlist_contents pc
  JOIN contents c ON pc.content_id = c.id
  JOIN playlist p ON pc.playlist_id = p.id`

func listPlaylistContentsByUserID(ctx context.Context, db connOrTx, userID int64) ([]PlaylistContentJoinRow, error) {
	var rows []PlaylistContentJoinRow
	if err := db.SelectContext(
		ctx,
		&rows,
		playlistContentsJoinSelect+" WHERE pc.user_id = ?",
		userID,
	); err != nil {
		return nil, fmt.Errorf("error Select playlist_contents by user_id=%d: %w", userID, err)
	}
	return rows, nil
}

// Membership rows are fetched by playlist id alone, with no owner
// cross-check against the sharing key resolved upstream. Kept as observed.
func listPlaylistContentsByPlaylistID(ctx context.Context, db connOrTx, playlistID int64) ([]PlaylistContentJoinRow, error) {
	var rows []PlaylistContentJoinRow
	if err := db.SelectContext(
		ctx,
		&rows,
		playlistContentsJoinSelect+" WHERE pc.playlist_id = ?",
		playlistID,
	); err != nil {
		return nil, fmt.Errorf("error Select playlist_contents by playlist_id=%d: %w", playlistID, err)
	}
	return rows, nil
}

// POST /api/signup

func apiSignupHandler(c echo.Context) error {
	var signupRequest SignupRequest
	if err := c.Bind(&signupRequest); err != nil {
		c.Logger().Errorf("error Bind request to SignupRequest: %s", err)
		return errorResponse(c, 500, "failed to signup")
	}

	// validation
	if signupRequest.Name == "" || signupRequest.Email == "" || signupRequest.Password == "" {
		return errorResponse(c, 400, "All fields are required")
	}

	passwordHash, err := generatePasswordHash(signupRequest.Password)
	if err != nil {
		c.Logger().Errorf("error generatePasswordHash: %s", err)
		return errorResponse(c, 500, "failed to signup")
	}
	uniqueKey, err := generateSharingKey(time.Now())
	if err != nil {
		c.Logger().Errorf("error generateSharingKey: %s", err)
		return errorResponse(c, 500, "failed to signup")
	}

	ctx := c.Request().Context()
	if _, err := db.ExecContext(
		ctx,
		"INSERT INTO users (`name`, `email`, `password`, `role`, `unique_key`) VALUES (?, ?, ?, ?, ?)",
		signupRequest.Name, signupRequest.Email, passwordHash, "admin", uniqueKey,
	); err != nil {
		// handling a "Duplicate entry"
		if isDuplicateEntryErr(err) {
			return errorResponse(c, 400, "User already exists")
		}
		c.Logger().Errorf("error Insert user by email=%s: %s", signupRequest.Email, err)
		return errorResponse(c, 500, "failed to signup")
	}

	body := SignupResponse{
		BasicResponse: BasicResponse{
			Success: true,
			Message: "User registered successfully",
		},
		UniqueKey: uniqueKey,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "failed to signup")
	}

	return nil
}

// POST /api/login

func apiLoginHandler(c echo.Context) error {
	var loginRequest LoginRequest
	if err := c.Bind(&loginRequest); err != nil {
		c.Logger().Errorf("error Bind request to LoginRequest: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}

	// validation
	if loginRequest.Email == "" || loginRequest.Password == "" {
		return errorResponse(c, 400, "Email and password are required")
	}

	ctx := c.Request().Context()
	user, err := getAdminUserByEmail(ctx, db, loginRequest.Email)
	if err != nil {
		c.Logger().Errorf("error getAdminUserByEmail: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}
	if user == nil {
		return errorResponse(c, 404, "User not found")
	}

	matched, err := comparePasswordHash(loginRequest.Password, user.Password)
	if err != nil {
		c.Logger().Errorf("error comparePasswordHash: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}
	if !matched {
		return errorResponse(c, 401, "Invalid credentials")
	}

	token, err := issueToken(user, jwtSecret, time.Now())
	if err != nil {
		c.Logger().Errorf("error issueToken: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}

	body := LoginResponse{
		BasicResponse: BasicResponse{
			Success: true,
			Message: "Login successful",
		},
		Token: token,
		User: UserSummary{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			UniqueKey: user.UniqueKey,
		},
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "failed to login (server error)")
	}

	return nil
}

// POST /api/forgot-password

func apiForgotPasswordHandler(c echo.Context) error {
	var forgotRequest ForgotPasswordRequest
	if err := c.Bind(&forgotRequest); err != nil {
		c.Logger().Errorf("error Bind request to ForgotPasswordRequest: %s", err)
		return errorResponse(c, 500, "Internal Server Error")
	}
	if forgotRequest.Email == "" {
		return errorResponse(c, 400, "Email is required")
	}

	ctx := c.Request().Context()
	user, err := getUserByEmail(ctx, db, forgotRequest.Email)
	if err != nil {
		c.Logger().Errorf("error getUserByEmail: %s", err)
		return errorResponse(c, 500, "Internal Server Error")
	}
	if user == nil {
		return errorResponse(c, 404, "User not found")
	}

	resetToken, err := generateResetToken()
	if err != nil {
		c.Logger().Errorf("error generateResetToken: %s", err)
		return errorResponse(c, 500, "Internal Server Error")
	}
	tokenExpiry := time.Now().Add(resetTokenTTL)

	// a fresh request overwrites any outstanding token
	if _, err := db.ExecContext(
		ctx,
		"UPDATE users SET `reset_token` = ?, `reset_token_expiry` = ? WHERE `email` = ?",
		resetToken, tokenExpiry, forgotRequest.Email,
	); err != nil {
		c.Logger().Errorf("error Update users by reset_token, email=%s: %s", forgotRequest.Email, err)
		return errorResponse(c, 500, "Internal Server Error")
	}

	link := resetLink(appBaseURL, resetToken, forgotRequest.Email)
	if err := mailer.SendResetLink(forgotRequest.Email, link); err != nil {
		c.Logger().Errorf("error SendResetLink to %s: %s", forgotRequest.Email, err)
		return errorResponse(c, 500, "Failed to send email")
	}

	body := BasicResponse{
		Success: true,
		Message: "Reset email sent successfully!",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "Internal Server Error")
	}

	return nil
}

// POST /api/reset-password

func apiResetPasswordHandler(c echo.Context) error {
	var resetRequest ResetPasswordRequest
	if err := c.Bind(&resetRequest); err != nil {
		c.Logger().Errorf("error Bind request to ResetPasswordRequest: %s", err)
		return errorResponse(c, 500, "failed to reset password")
	}
	if resetRequest.Email == "" || resetRequest.Token == "" || resetRequest.NewPassword == "" {
		return errorResponse(c, 400, "All fields are required")
	}

	passwordHash, err := generatePasswordHash(resetRequest.NewPassword)
	if err != nil {
		c.Logger().Errorf("error generatePasswordHash: %s", err)
		return errorResponse(c, 500, "failed to reset password")
	}

	// single UPDATE: the new hash lands and both token fields clear
	// together, so a consumed token can never be replayed
	ctx := c.Request().Context()
	res, err := db.ExecContext(
		ctx,
		"UPDATE users SET `password` = ?, `reset_token` = NULL, `reset_token_expiry` = NULL WHERE `email` = ? AND `reset_token` = ? AND `reset_token_expiry` > NOW()",
		passwordHash, resetRequest.Email, resetRequest.Token,
	)
	if err != nil {
		c.Logger().Errorf("error Update users by email=%s: %s", resetRequest.Email, err)
		return errorResponse(c, 500, "failed to reset password")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		c.Logger().Errorf("error RowsAffected: %s", err)
		return errorResponse(c, 500, "failed to reset password")
	}
	if affected == 0 {
		return errorResponse(c, 400, "Invalid or expired token")
	}

	body := BasicResponse{
		Success: true,
		Message: "Password reset successful",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "failed to reset password")
	}

	return nil
}

// GET /api/profile

func apiGetProfileHandler(c echo.Context) error {
	claims := currentClaims(c)

	ctx := c.Request().Context()
	var row ProfileRow
	if err := db.GetContext(
		ctx,
		&row,
		"SELECT `name`, `last_name`, `dob`, `description`, `image`, `unique_key` FROM users WHERE `email` = ? AND `unique_key` = ?",
		claims.Email, claims.UniqueKey,
	); err != nil {
		if err == sql.ErrNoRows {
			return errorResponse(c, 404, "User not found")
		}
		c.Logger().Errorf("error Get profile by email=%s: %s", claims.Email, err)
		return errorResponse(c, 500, "internal server error")
	}

	body := ProfileResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		Data: Profile{
			Name:        row.Name,
			LastName:    row.LastName.String,
			DOB:         row.DOB.String,
			Description: row.Description.String,
			Image:       row.Image.String,
			UniqueKey:   row.UniqueKey,
		},
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// PUT /api/profile

func apiUpdateProfileHandler(c echo.Context) error {
	claims := currentClaims(c)

	var updateRequest UpdateProfileRequest
	if err := c.Bind(&updateRequest); err != nil {
		c.Logger().Errorf("error Bind request to UpdateProfileRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	ctx := c.Request().Context()
	if _, err := db.ExecContext(
		ctx,
		"UPDATE users SET `name` = ?, `last_name` = ?, `dob` = ?, `description` = ?, `image` = ? WHERE `email` = ?",
		updateRequest.Name, updateRequest.LastName, updateRequest.DOB,
		updateRequest.Description, updateRequest.Image, claims.Email,
	); err != nil {
		c.Logger().Errorf("error Update users by email=%s: %s", claims.Email, err)
		return errorResponse(c, 500, "internal server error")
	}

	body := BasicResponse{
		Success: true,
		Message: "Profile updated successfully",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// POST /api/contents

func apiAddContentHandler(c echo.Context) error {
	claims := currentClaims(c)

	var addRequest AddContentRequest
	if err := c.Bind(&addRequest); err != nil {
		c.Logger().Errorf("error Bind request to AddContentRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if addRequest.URL == "" {
		return errorResponse(c, 400, "Url input is required")
	}

	ctx := c.Request().Context()
	if _, err := db.ExecContext(
		ctx,
		"INSERT INTO contents (`url`, `user_id`, `name`) VALUES (?, ?, ?)",
		addRequest.URL, claims.ID, addRequest.Name,
	); err != nil {
		if isDuplicateEntryErr(err) {
			return errorResponse(c, 400, "Url already exists")
		}
		c.Logger().Errorf("error Insert contents by url=%s, user_id=%d: %s", addRequest.URL, claims.ID, err)
		return errorResponse(c, 500, "internal server error")
	}

	body := BasicResponse{
		Success: true,
		Message: "Url added successfully",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// GET /api/contents

func apiContentsHandler(c echo.Context) error {
	claims := currentClaims(c)

	ctx := c.Request().Context()
	rows, err := listContentsByUserID(ctx, db, claims.ID)
	if err != nil {
		c.Logger().Errorf("error listContentsByUserID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	contents := make([]Content, 0, len(rows))
	for _, row := range rows {
		contents = append(contents, Content{
			ID:        row.ID,
			URL:       row.URL,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	body := ContentsResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		Data: contents,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// DELETE /api/contents

func apiDeleteContentHandler(c echo.Context) error {
	claims := currentClaims(c)

	var deleteRequest DeleteContentRequest
	if err := c.Bind(&deleteRequest); err != nil {
		c.Logger().Errorf("error Bind request to DeleteContentRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if deleteRequest.ID == 0 {
		return errorResponse(c, 400, "ID is required")
	}

	// owner-scoped; deleting someone else's row affects nothing and
	// still reports success
	ctx := c.Request().Context()
	if _, err := db.ExecContext(
		ctx,
		"DELETE FROM contents WHERE `id` = ? AND `user_id` = ?",
		deleteRequest.ID, claims.ID,
	); err != nil {
		c.Logger().Errorf("error Delete contents by id=%d, user_id=%d: %s", deleteRequest.ID, claims.ID, err)
		return errorResponse(c, 500, "internal server error")
	}

	body := BasicResponse{
		Success: true,
		Message: "Url deleted successfully",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// POST /api/playlists

func apiAddPlaylistHandler(c echo.Context) error {
	claims := currentClaims(c)

	var addRequest AddPlaylistRequest
	if err := c.Bind(&addRequest); err != nil {
		c.Logger().Errorf("error Bind request to AddPlaylistRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if addRequest.Name == "" {
		return errorResponse(c, 400, "Name input is required")
	}

	ctx := c.Request().Context()
	if _, err := db.ExecContext(
		ctx,
		"INSERT INTO playlist (`name`, `user_id`) VALUES (?, ?)",
		addRequest.Name, claims.ID,
	); err != nil {
		if isDuplicateEntryErr(err) {
			return errorResponse(c, 400, "Name already exists")
		}
		c.Logger().Errorf("error Insert playlist by name=%s, user_id=%d: %s", addRequest.Name, claims.ID, err)
		return errorResponse(c, 500, "internal server error")
	}

	body := BasicResponse{
		Success: true,
		Message: "Playlist added successfully",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// GET /api/playlists

func apiPlaylistsHandler(c echo.Context) error {
	claims := currentClaims(c)

	ctx := c.Request().Context()
	rows, err := listPlaylistsByUserID(ctx, db, claims.ID)
	if err != nil {
		c.Logger().Errorf("error listPlaylistsByUserID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	playlists := make([]Playlist, 0, len(rows))
	for _, row := range rows {
		playlists = append(playlists, Playlist{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	body := PlaylistsResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		Data: playlists,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// DELETE /api/playlists

func apiDeletePlaylistHandler(c echo.Context) error {
	claims := currentClaims(c)

	var deleteRequest DeletePlaylistRequest
	if err := c.Bind(&deleteRequest); err != nil {
		c.Logger().Errorf("error Bind request to DeletePlaylistRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if deleteRequest.ID == 0 {
		return errorResponse(c, 400, "ID is required")
	}

	ctx := c.Request().Context()
	if _, err := db.ExecContext(
		ctx,
		"DELETE FROM playlist WHERE `id` = ? AND `user_id` = ?",
		deleteRequest.ID, claims.ID,
	); err != nil {
		c.Logger().Errorf("error Delete playlist by id=%d, user_id=%d: %s", deleteRequest.ID, claims.ID, err)
		return errorResponse(c, 500, "internal server error")
	}

	body := BasicResponse{
		Success: true,
		Message: "Playlist deleted successfully",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// POST /api/playlist_contents

func apiAddPlaylistContentHandler(c echo.Context) error {
	claims := currentClaims(c)

	var addRequest AddPlaylistContentRequest
	if err := c.Bind(&addRequest); err != nil {
		c.Logger().Errorf("error Bind request to AddPlaylistContentRequest: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if addRequest.ContentID == 0 || addRequest.PlaylistID == 0 {
		return errorResponse(c, 400, "content_id and playlist_id are required")
	}

	// one row per call; attaching several contents means several calls
	ctx := c.Request().Context()
	if _, err := db.ExecContext(
		ctx,
		"INSERT INTO playlist_contents (`content_id`, `playlist_id`, `user_id`) VALUES (?, ?, ?)",
		addRequest.ContentID, addRequest.PlaylistID, claims.ID,
	); err != nil {
		c.Logger().Errorf(
			"error Insert playlist_contents by content_id=%d, playlist_id=%d, user_id=%d: %s",
			addRequest.ContentID, addRequest.PlaylistID, claims.ID, err,
		)
		return errorResponse(c, 500, "internal server error")
	}

	body := BasicResponse{
		Success: true,
		Message: "Content added to playlist",
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// GET /api/playlist_contents

func apiPlaylistContentsHandler(c echo.Context) error {
	claims := currentClaims(c)

	ctx := c.Request().Context()
	rows, err := listPlaylistContentsByUserID(ctx, db, claims.ID)
	if err != nil {
		c.Logger().Errorf("error listPlaylistContentsByUserID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	memberships := make([]PlaylistContent, 0, len(rows))
	for _, row := range rows {
		memberships = append(memberships, PlaylistContent{
			ID:           row.ID,
			ContentID:    row.ContentID,
			ContentURL:   row.ContentURL,
			ContentName:  row.ContentName,
			PlaylistID:   row.PlaylistID,
			PlaylistName: row.PlaylistName,
		})
	}

	body := PlaylistContentsResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		Data: memberships,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// GET /api/public/{:key}

func apiPublicKeyHandler(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return errorResponse(c, 400, "Key is required")
	}

	ctx := c.Request().Context()
	userID, found, err := getUserIDBySharingKey(ctx, db, key)
	if err != nil {
		c.Logger().Errorf("error getUserIDBySharingKey: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if !found {
		return errorResponse(c, 404, "Invalid or expired key")
	}

	body := PublicKeyResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		UserID: userID,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// GET /api/public/contents/{:userId}

func apiPublicContentsHandler(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return errorResponse(c, 400, "User ID is required")
	}

	ctx := c.Request().Context()
	rows, err := listContentsByUserID(ctx, db, userID)
	if err != nil {
		c.Logger().Errorf("error listContentsByUserID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	// empty means not found here; public clients branch on it
	if len(rows) == 0 {
		return errorResponse(c, 404, "No contents found for this user")
	}

	contents := make([]Content, 0, len(rows))
	for _, row := range rows {
		contents = append(contents, Content{
			ID:        row.ID,
			URL:       row.URL,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	body := PublicContentsResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		UserID:   userID,
		Contents: contents,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// GET /api/public/playlists/{:userId}

func apiPublicPlaylistsHandler(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return errorResponse(c, 400, "User ID is required")
	}

	ctx := c.Request().Context()
	rows, err := listPlaylistsByUserID(ctx, db, userID)
	if err != nil {
		c.Logger().Errorf("error listPlaylistsByUserID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if len(rows) == 0 {
		return errorResponse(c, 404, "No playlists found for this user")
	}

	playlists := make([]Playlist, 0, len(rows))
	for _, row := range rows {
		playlists = append(playlists, Playlist{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	body := PublicPlaylistsResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		UserID:    userID,
		Playlists: playlists,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}

// GET /api/public/playlist_contents/{:playlistId}

func apiPublicPlaylistContentsHandler(c echo.Context) error {
	playlistID, err := strconv.ParseInt(c.Param("playlistId"), 10, 64)
	if err != nil {
		return errorResponse(c, 400, "Playlist ID is required")
	}

	ctx := c.Request().Context()
	rows, err := listPlaylistContentsByPlaylistID(ctx, db, playlistID)
	if err != nil {
		c.Logger().Errorf("error listPlaylistContentsByPlaylistID: %s", err)
		return errorResponse(c, 500, "internal server error")
	}
	if len(rows) == 0 {
		return errorResponse(c, 404, "No contents found for this playlist")
	}

	contents := make([]PublicPlaylistContent, 0, len(rows))
	for _, row := range rows {
		contents = append(contents, PublicPlaylistContent{
			PlaylistContent: PlaylistContent{
				ID:           row.ID,
				ContentID:    row.ContentID,
				ContentURL:   row.ContentURL,
				ContentName:  row.ContentName,
				PlaylistID:   row.PlaylistID,
				PlaylistName: row.PlaylistName,
			},
			UserID:    row.UserID,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	body := PublicPlaylistContentsResponse{
		BasicResponse: BasicResponse{
			Success: true,
		},
		PlaylistID: playlistID,
		Contents:   contents,
	}
	if err := c.JSON(http.StatusOK, body); err != nil {
		c.Logger().Errorf("error returns JSON: %s", err)
		return errorResponse(c, 500, "internal server error")
	}

	return nil
}
