package httpapi

import (
	"net/http"

	"github.com/stagecall/stagecall/internal/app"
	"github.com/stagecall/stagecall/internal/concepts/events"
)

func (s *Server) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.app.Authing.GetUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.app.Authing.GetUserByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, user, err := s.app.Authing.Create(r.Context(), payload.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Msg: msg, Record: user})
}

func (s *Server) updateUsername(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.Authing.UpdateUsername(r.Context(), actor, payload.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.Authing.Delete(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) getPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.app.GetPosts(r.Context(), r.URL.Query().Get("author"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, post, err := s.app.CreatePost(r.Context(), actor, payload.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Msg: msg, Record: post})
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.UpdatePost(r.Context(), actor, r.PathValue("id"), payload.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.DeletePost(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) getVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.app.GetVideos(r.Context(), r.URL.Query().Get("author"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (s *Server) createVideo(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		URL         string `json:"url"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, video, err := s.app.CreateVideo(r.Context(), actor, payload.URL, payload.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Msg: msg, Record: video})
}

func (s *Server) deleteVideo(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.DeleteVideo(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) getAllOrgs(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.app.GetAllOrgs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (s *Server) getOrg(w http.ResponseWriter, r *http.Request) {
	org, err := s.app.GetOrg(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (s *Server) createOrg(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Private     bool   `json:"private"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, org, err := s.app.CreateOrg(r.Context(), actor, payload.Name, payload.Description, payload.Private)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Msg: msg, Record: org})
}

func (s *Server) updateOrg(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.UpdateOrg(r.Context(), actor, r.PathValue("id"), payload.Name, payload.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) deleteOrg(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.DeleteOrg(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) addOrgMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Member string `json:"member"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.AddOrgMember(r.Context(), actor, r.PathValue("id"), payload.Member)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) deleteOrgMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.DeleteOrgMember(r.Context(), actor, r.PathValue("id"), r.PathValue("member"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) makeOrgPublic(w http.ResponseWriter, r *http.Request) {
	s.setOrgPrivacy(w, r, false)
}

func (s *Server) makeOrgPrivate(w http.ResponseWriter, r *http.Request) {
	s.setOrgPrivacy(w, r, true)
}

func (s *Server) setOrgPrivacy(w http.ResponseWriter, r *http.Request, private bool) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.SetOrgPrivacy(r.Context(), actor, r.PathValue("id"), private)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) getAllEvents(w http.ResponseWriter, r *http.Request) {
	all, err := s.app.GetAllEvents(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.app.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name        string  `json:"name"`
		Time        string  `json:"time"`
		Location    string  `json:"location"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, event, err := s.app.CreateEvent(r.Context(), actor, payload.Name, payload.Time, payload.Location, payload.Price, payload.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Msg: msg, Record: event})
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		Name        *string  `json:"name"`
		Time        *string  `json:"time"`
		Location    *string  `json:"location"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	patch := events.EventPatch{
		Name:        payload.Name,
		Time:        payload.Time,
		Location:    payload.Location,
		Price:       payload.Price,
		Description: payload.Description,
	}
	msg, err := s.app.UpdateEvent(r.Context(), actor, r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.DeleteEvent(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

// listAddOps maps the path segment for each event string set to its add
// operation.
func (s *Server) listAddOps() map[string]app.EventListOp {
	return map[string]app.EventListOp{
		"choreographers": s.app.Events.AddChoreographer,
		"genres":         s.app.Events.AddGenre,
		"props":          s.app.Events.AddProp,
		"attendees":      s.app.Events.AddAttendee,
	}
}

func (s *Server) listDeleteOps() map[string]app.EventListOp {
	return map[string]app.EventListOp{
		"choreographers": s.app.Events.DeleteChoreographer,
		"genres":         s.app.Events.DeleteGenre,
		"props":          s.app.Events.DeleteProp,
		"attendees":      s.app.Events.DeleteAttendee,
	}
}

func (s *Server) addEventListValue(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	op, ok := s.listAddOps()[r.PathValue("list")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	var payload struct {
		Value string `json:"value"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.MutateEventList(r.Context(), actor, r.PathValue("id"), payload.Value, op)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) deleteEventListValue(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	op, ok := s.listDeleteOps()[r.PathValue("list")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	msg, err := s.app.MutateEventList(r.Context(), actor, r.PathValue("id"), r.PathValue("value"), op)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) createMap(w http.ResponseWriter, r *http.Request) {
	msg, m, err := s.app.Mapping.CreateMap(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Msg: msg, Record: m})
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	m, err := s.app.Mapping.GetMap(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) scrollMap(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.Mapping.Scroll(r.Context(), r.PathValue("id"), payload.DX, payload.DY)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) makePin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Event string  `json:"event"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, pin, err := s.app.Mapping.MakePin(r.Context(), payload.Event, payload.X, payload.Y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordResponse{Msg: msg, Record: pin})
}

func (s *Server) getPinEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.app.Mapping.GetPinEventID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"event": event})
}

func (s *Server) getFriends(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	friends, err := s.app.GetFriends(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

func (s *Server) removeFriend(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.RemoveFriend(r.Context(), actor, r.PathValue("friend"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) getFriendRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	requests, err := s.app.GetFriendRequests(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *Server) sendFriendRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.SendFriendRequest(r.Context(), actor, r.PathValue("to"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Msg: msg})
}

func (s *Server) removeFriendRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.RemoveFriendRequest(r.Context(), actor, r.PathValue("to"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) acceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.AcceptFriendRequest(r.Context(), actor, r.PathValue("from"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) rejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.RejectFriendRequest(r.Context(), actor, r.PathValue("from"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) getInvites(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	invites, err := s.app.GetInvites(r.Context(), actor)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invites)
}

func (s *Server) sendInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		EventID string `json:"event_id"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.SendInvite(r.Context(), actor, r.PathValue("to"), payload.EventID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Msg: msg})
}

func (s *Server) removeInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	msg, err := s.app.RemoveInvite(r.Context(), actor, r.PathValue("to"), r.URL.Query().Get("event_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) acceptInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		EventID string `json:"event_id"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.AcceptInvite(r.Context(), actor, r.PathValue("from"), payload.EventID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}

func (s *Server) rejectInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.actor(w, r)
	if !ok {
		return
	}
	var payload struct {
		EventID string `json:"event_id"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeBadRequest(w, err)
		return
	}
	msg, err := s.app.RejectInvite(r.Context(), actor, r.PathValue("from"), payload.EventID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, msg)
}
