package jsonfile

import (
	papertrack "github.com/jackzhenguo/updatest-paper-in-arxiv"
)

// Row types carry the on-disk field set, including the fields the
// domain types keep out of their JSON form (password, owner id).

type userRow struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CreatedAt string `json:"created_at"`
}

func newUserRow(u *papertrack.User) userRow {
	return userRow{ID: u.ID, Email: u.Email, Password: u.Password, CreatedAt: u.CreatedAt}
}

func (r userRow) toUser() papertrack.User {
	return papertrack.User{ID: r.ID, Email: r.Email, Password: r.Password, CreatedAt: r.CreatedAt}
}

type sessionRow struct {
	Token     string `json:"token"`
	UserID    int    `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

func newSessionRow(s *papertrack.Session) sessionRow {
	return sessionRow{Token: s.Token, UserID: s.UserID, CreatedAt: s.CreatedAt}
}

func (r sessionRow) toSession() papertrack.Session {
	return papertrack.Session{Token: r.Token, UserID: r.UserID, CreatedAt: r.CreatedAt}
}

type paperRow struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Title     string `json:"paper_title"`
	DOI       string `json:"doi"`
	Link      string `json:"paper_link"`
	Published string `json:"published"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Rating    int    `json:"rating"`
}

func newPaperRow(p *papertrack.Paper) paperRow {
	return paperRow{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		DOI:       p.DOI,
		Link:      p.Link,
		Published: p.Published,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Rating:    p.Rating,
	}
}

func (r paperRow) toPaper() papertrack.Paper {
	return papertrack.Paper{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		DOI:       r.DOI,
		Link:      r.Link,
		Published: r.Published,
		Status:    papertrack.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Rating:    r.Rating,
	}
}
