package main

import "time"

// API essential types

type UserSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	UniqueKey string `json:"unique_key"`
}

type Profile struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	DOB         string `json:"dob"`
	Description string `json:"description"`
	Image       string `json:"image"`
	UniqueKey   string `json:"unique_key"`
}

type Content struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Playlist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlaylistContent struct {
	ID           int64  `json:"id"`
	ContentID    int64  `json:"content_id"`
	ContentURL   string `json:"content_url"`
	ContentName  string `json:"content_name"`
	PlaylistID   int64  `json:"playlist_id"`
	PlaylistName string `json:"playlist_name"`
}

// PublicPlaylistContent additionally exposes the owner id and timestamps,
// matching the public endpoint's row shape.
type PublicPlaylistContent struct {
	PlaylistContent
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// API request types

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	DOB         string `json:"dob"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type AddContentRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type DeleteContentRequest struct {
	ID int64 `json:"id"`
}

type AddPlaylistRequest struct {
	Name string `json:"name"`
}

type DeletePlaylistRequest struct {
	ID int64 `json:"id"`
}

type AddPlaylistContentRequest struct {
	ContentID  int64 `json:"content_id"`
	PlaylistID int64 `json:"playlist_id"`
}

// API response types

type BasicResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type SignupResponse struct {
	BasicResponse
	UniqueKey string `json:"uniqueKey"`
}

type LoginResponse struct {
	BasicResponse
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type ProfileResponse struct {
	BasicResponse
	Data Profile `json:"data"`
}

type ContentsResponse struct {
	BasicResponse
	Data []Content `json:"data"`
}

type PlaylistsResponse struct {
	BasicResponse
	Data []Playlist `json:"data"`
}

type PlaylistContentsResponse struct {
	BasicResponse
	Data []PlaylistContent `json:"data"`
}

type PublicKeyResponse struct {
	BasicResponse
	UserID int64 `json:"userId"`
}

type PublicContentsResponse struct {
	BasicResponse
	UserID   int64     `json:"userId"`
	Contents []Content `json:"contents"`
}

type PublicPlaylistsResponse struct {
	BasicResponse
	UserID    int64      `json:"userId"`
	Playlists []Playlist `json:"playlists"`
}

type PublicPlaylistContentsResponse struct {
	BasicResponse
	PlaylistID int64                   `json:"playlistId"`
	Contents   []PublicPlaylistContent `json:"contents"`
}
