// Package httpapi exposes the app over HTTP/JSON. Routing uses the standard
// mux with method patterns; every mutating route reads the acting user from
// the request and hands orchestration to the app layer.
package httpapi

import (
	"net/http"

	"github.com/stagecall/stagecall/internal/app"
)

// Server routes HTTP requests to app operations.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// NewServer builds the HTTP surface over the app.
func NewServer(a *app.App) *Server {
	s := &Server{app: a, mux: http.NewServeMux()}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /users", s.getUsers)
	s.mux.HandleFunc("GET /users/{username}", s.getUser)
	s.mux.HandleFunc("POST /users", s.createUser)
	s.mux.HandleFunc("PATCH /users/username", s.updateUsername)
	s.mux.HandleFunc("DELETE /users", s.deleteUser)

	s.mux.HandleFunc("GET /posts", s.getPosts)
	s.mux.HandleFunc("POST /posts", s.createPost)
	s.mux.HandleFunc("PATCH /posts/{id}", s.updatePost)
	s.mux.HandleFunc("DELETE /posts/{id}", s.deletePost)

	s.mux.HandleFunc("GET /videos", s.getVideos)
	s.mux.HandleFunc("POST /videos", s.createVideo)
	s.mux.HandleFunc("DELETE /videos/{id}", s.deleteVideo)

	s.mux.HandleFunc("GET /organizations", s.getAllOrgs)
	s.mux.HandleFunc("GET /organizations/{id}", s.getOrg)
	s.mux.HandleFunc("POST /organizations", s.createOrg)
	s.mux.HandleFunc("PATCH /organizations/{id}", s.updateOrg)
	s.mux.HandleFunc("DELETE /organizations/{id}", s.deleteOrg)
	s.mux.HandleFunc("PUT /organizations/{id}/members", s.addOrgMember)
	s.mux.HandleFunc("DELETE /organizations/{id}/members/{member}", s.deleteOrgMember)
	s.mux.HandleFunc("PUT /organizations/{id}/public", s.makeOrgPublic)
	s.mux.HandleFunc("PUT /organizations/{id}/private", s.makeOrgPrivate)

	s.mux.HandleFunc("GET /events", s.getAllEvents)
	s.mux.HandleFunc("GET /events/{id}", s.getEvent)
	s.mux.HandleFunc("POST /events", s.createEvent)
	s.mux.HandleFunc("PATCH /events/{id}", s.updateEvent)
	s.mux.HandleFunc("DELETE /events/{id}", s.deleteEvent)
	s.mux.HandleFunc("PUT /events/{id}/{list}", s.addEventListValue)
	s.mux.HandleFunc("DELETE /events/{id}/{list}/{value}", s.deleteEventListValue)

	s.mux.HandleFunc("POST /map", s.createMap)
	s.mux.HandleFunc("GET /map/{id}", s.getMap)
	s.mux.HandleFunc("PATCH /map/{id}/scroll", s.scrollMap)
	s.mux.HandleFunc("POST /pins", s.makePin)
	s.mux.HandleFunc("GET /pins/{id}/event", s.getPinEvent)

	s.mux.HandleFunc("GET /friends", s.getFriends)
	s.mux.HandleFunc("DELETE /friends/{friend}", s.removeFriend)
	s.mux.HandleFunc("GET /friend/requests", s.getFriendRequests)
	s.mux.HandleFunc("POST /friend/requests/{to}", s.sendFriendRequest)
	s.mux.HandleFunc("DELETE /friend/requests/{to}", s.removeFriendRequest)
	s.mux.HandleFunc("PUT /friend/accept/{from}", s.acceptFriendRequest)
	s.mux.HandleFunc("PUT /friend/reject/{from}", s.rejectFriendRequest)

	s.mux.HandleFunc("GET /invite", s.getInvites)
	s.mux.HandleFunc("POST /invite/{to}", s.sendInvite)
	s.mux.HandleFunc("DELETE /invite/{to}", s.removeInvite)
	s.mux.HandleFunc("PUT /invite/accept/{from}", s.acceptInvite)
	s.mux.HandleFunc("PUT /invite/reject/{from}", s.rejectInvite)
}
