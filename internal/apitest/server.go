// Package apitest はサービス・ビューのテストで使うインプロセスの擬似ブログバックエンドを提供する。
//
// 実バックエンドと同じREST表面をchiルーターで実装し、データはメモリ上に保持する。
// 製品コードではなくテスト専用のダブルである。
package apitest

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hitoshi/blogman/internal/model"
)

// Server は擬似ブログバックエンド。
// 挿入順を保持するため、データはマップではなくスライスで持つ。
type Server struct {
	mu         sync.Mutex
	posts      []model.Post
	categories []model.Category

	// LoginUserID / LoginToken はPOST /authが返す認証情報。
	LoginUserID string
	LoginToken  string
}

// NewServer はServerの新しいインスタンスを生成する。
func NewServer() *Server {
	return &Server{
		LoginUserID: "user-1",
		LoginToken:  "test-token",
	}
}

// SeedPost は記事を直接投入し、採番されたIDを返す。
func (s *Server) SeedPost(post model.Post) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.PostID == "" {
		post.PostID = uuid.NewString()
	}
	s.posts = append(s.posts, post)
	return post.PostID
}

// SeedCategory はカテゴリを直接投入し、採番されたIDを返す。
func (s *Server) SeedCategory(category model.Category) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.CategoryID == "" {
		category.CategoryID = uuid.NewString()
	}
	s.categories = append(s.categories, category)
	return category.CategoryID
}

// Router は全エンドポイントのルーティングを構成したchi.Routerを返す。
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/posts", s.listPosts)
	r.Post("/posts", s.createPost)
	r.Get("/posts/{id}", s.getPost)
	r.Put("/posts/{id}", s.updatePost)
	r.Delete("/posts/{id}", s.deletePost)
	r.Put("/posts/like/{id}", s.likePost)
	r.Put("/posts/dislike/{id}", s.dislikePost)
	r.Get("/users/posts/{userId}", s.listPostsByUser)

	r.Post("/categories", s.createCategory)
	r.Get("/categories/{id}", s.getCategory)
	r.Put("/categories/{id}", s.updateCategory)
	r.Delete("/categories/{id}", s.deleteCategory)
	r.Get("/users/categories/{userId}", s.listCategoriesByUser)

	r.Post("/auth", s.login)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	posts := append([]model.Post(nil), s.posts...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) listPostsByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	s.mu.Lock()
	var posts []model.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	s.mu.Unlock()
	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.PostID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "post not found"})
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var post model.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	post.PostID = uuid.NewString()
	s.mu.Lock()
	s.posts = append(s.posts, post)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var post model.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].PostID == id {
			post.PostID = id
			s.posts[i] = post
			writeJSON(w, http.StatusOK, post)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "post not found"})
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].PostID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			writeJSON(w, http.StatusOK, model.DeleteOutcome{Affected: 1})
			return
		}
	}
	// 該当なしはエラーではなくaffected 0
	writeJSON(w, http.StatusOK, model.DeleteOutcome{Affected: 0})
}

func (s *Server) likePost(w http.ResponseWriter, r *http.Request) {
	s.adjustCounter(w, chi.URLParam(r, "id"), true)
}

func (s *Server) dislikePost(w http.ResponseWriter, r *http.Request) {
	s.adjustCounter(w, chi.URLParam(r, "id"), false)
}

func (s *Server) adjustCounter(w http.ResponseWriter, id string, like bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].PostID == id {
			if like {
				s.posts[i].NumLikes++
			} else {
				s.posts[i].NumDislikes++
			}
			writeJSON(w, http.StatusOK, model.UpdateOutcome{Affected: 1})
			return
		}
	}
	writeJSON(w, http.StatusOK, model.UpdateOutcome{Affected: 0})
}

func (s *Server) listCategoriesByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	s.mu.Lock()
	var categories []model.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			categories = append(categories, c)
		}
	}
	s.mu.Unlock()
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.CategoryID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "category not found"})
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var category model.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	category.CategoryID = uuid.NewString()
	s.mu.Lock()
	s.categories = append(s.categories, category)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var category model.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].CategoryID == id {
			category.CategoryID = id
			s.categories[i] = category
			writeJSON(w, http.StatusOK, category)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "category not found"})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].CategoryID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			writeJSON(w, http.StatusOK, model.DeleteOutcome{Affected: 1})
			return
		}
	}
	// 該当なしはエラーではなくaffected 0
	writeJSON(w, http.StatusOK, model.DeleteOutcome{Affected: 0})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":      s.LoginUserID,
		"access_token": s.LoginToken,
	})
}
