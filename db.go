package main

import (
	"database/sql"
	"time"
)

type UserRow struct {
	ID               int64          `db:"id"`
	Name             string         `db:"name"`
	LastName         sql.NullString `db:"last_name"`
	DOB              sql.NullString `db:"dob"`
	Description      sql.NullString `db:"description"`
	Image            sql.NullString `db:"image"`
	Email            string         `db:"email"`
	Password         string         `db:"password"`
	Role             string         `db:"role"`
	UniqueKey        string         `db:"unique_key"`
	ResetToken       sql.NullString `db:"reset_token"`
	ResetTokenExpiry sql.NullTime   `db:"reset_token_expiry"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type ProfileRow struct {
	Name        string         `db:"name"`
	LastName    sql.NullString `db:"last_name"`
	DOB         sql.NullString `db:"dob"`
	Description sql.NullString `db:"description"`
	Image       sql.NullString `db:"image"`
	UniqueKey   string         `db:"unique_key"`
}

type ContentRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	URL       string    `db:"url"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type PlaylistRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type PlaylistContentRow struct {
	ID         int64     `db:"id"`
	ContentID  int64     `db:"content_id"`
	PlaylistID int64     `db:"playlist_id"`
	UserID     int64     `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// PlaylistContentJoinRow is the denormalized membership row produced by
// joining playlist_contents against contents and playlist.
type PlaylistContentJoinRow struct {
	ID           int64     `db:"id"`
	ContentID    int64     `db:"content_id"`
	ContentURL   string    `db:"content_url"`
	ContentName  string    `db:"content_name"`
	PlaylistID   int64     `db:"playlist_id"`
	PlaylistName string    `db:"playlist_name"`
	UserID       int64     `db:"user_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
