package handlers

import (
	"net/url"
	"time"

	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/services"
	"github.com/kimhsiao/eboard/internal/timez"
)

// Canonical URLs follow containment: project notes live under their
// project and milestone tasks under their milestone.

func userURI(username string) string {
	return "/users/" + url.PathEscape(username)
}

func taskURI(username string, t *models.Task) string {
	if t.Standalone() {
		return userURI(username) + "/tasks/" + t.ID
	}
	return milestoneURI(username, t.ProjectID, t.MilestoneID) + "/tasks/" + t.ID
}

func noteURI(username string, n *models.Note) string {
	if n.ProjectID != "" {
		return projectURI(username, n.ProjectID) + "/notes/" + n.ID
	}
	return userURI(username) + "/notes/" + n.ID
}

func projectURI(username, id string) string {
	return userURI(username) + "/projects/" + id
}

func milestoneURI(username, projectID, id string) string {
	return projectURI(username, projectID) + "/milestones/" + id
}

func eventURI(username, id string) string {
	return userURI(username) + "/events/" + id
}

func bookmarkURI(username, id string) string {
	return userURI(username) + "/bookmarks/" + id
}

func itemURI(username, bookmarkID, id string) string {
	return bookmarkURI(username, bookmarkID) + "/items/" + id
}

func tagURI(name string) string {
	return "/tags/" + url.PathEscape(name)
}

// view renders entities for one target user: URLs use their name and
// instants their zone.
type view struct {
	username string
	loc      *time.Location
}

func viewOf(u *models.User) view {
	return view{username: u.Username, loc: u.Location()}
}

type taskPayload struct {
	URI        string   `json:"uri"`
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Created    string   `json:"created"`
	Deadline   string   `json:"deadline"`
	Body       string   `json:"body"`
	Importance int      `json:"importance"`
	Urgency    int      `json:"urgency"`
	Active     bool     `json:"active"`
	Complete   bool     `json:"complete"`
	Tags       []string `json:"tags"`
	Milestone  string   `json:"milestone,omitempty"`
	Event      string   `json:"deadline_event,omitempty"`
}

// task renders t; the full form carries seconds in its deadline, the list
// form does not.
func (v view) task(t *models.Task, full bool) taskPayload {
	p := taskPayload{
		URI:        taskURI(v.username, t),
		ID:         t.ID,
		Title:      t.Title,
		Created:    timez.FormatLong(t.Created, v.loc),
		Deadline:   timez.FormatShort(t.Deadline, v.loc),
		Body:       t.Body,
		Importance: t.Importance,
		Urgency:    t.Urgency,
		Active:     t.Active,
		Complete:   t.Complete,
		Tags:       t.Tags,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if full {
		p.Deadline = timez.FormatLong(t.Deadline, v.loc)
	}
	if !t.Standalone() {
		p.Milestone = milestoneURI(v.username, t.ProjectID, t.MilestoneID)
	}
	if t.DeadlineEventID != "" {
		p.Event = eventURI(v.username, t.DeadlineEventID)
	}
	return p
}

func (v view) tasks(tasks []*models.Task) []taskPayload {
	out := make([]taskPayload, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, v.task(t, false))
	}
	return out
}

type notePayload struct {
	URI       string   `json:"uri"`
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Timestamp string   `json:"timestamp"`
	Tags      []string `json:"tags"`
	Project   string   `json:"project,omitempty"`
}

func (v view) note(n *models.Note) notePayload {
	p := notePayload{
		URI:       noteURI(v.username, n),
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		Timestamp: timez.FormatLong(n.Timestamp, v.loc),
		Tags:      n.Tags,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if n.ProjectID != "" {
		p.Project = projectURI(v.username, n.ProjectID)
	}
	return p
}

func (v view) notes(notes []*models.Note) []notePayload {
	out := make([]notePayload, 0, len(notes))
	for _, n := range notes {
		out = append(out, v.note(n))
	}
	return out
}

type milestonePayload struct {
	URI      string         `json:"uri"`
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Desc     string         `json:"desc"`
	Position int            `json:"position"`
	Tasks    *[]taskPayload `json:"tasks,omitempty"`
}

func (v view) milestone(m *models.Milestone) milestonePayload {
	p := milestonePayload{
		URI:      milestoneURI(v.username, m.ProjectID, m.ID),
		ID:       m.ID,
		Title:    m.Title,
		Desc:     m.Desc,
		Position: m.Position,
	}
	if m.Tasks != nil {
		tasks := v.tasks(m.Tasks)
		p.Tasks = &tasks
	}
	return p
}

func (v view) milestones(ms []*models.Milestone) []milestonePayload {
	out := make([]milestonePayload, 0, len(ms))
	for _, m := range ms {
		out = append(out, v.milestone(m))
	}
	return out
}

type projectPayload struct {
	URI        string              `json:"uri"`
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Desc       string              `json:"desc"`
	Deadline   string              `json:"deadline"`
	Created    string              `json:"created"`
	Modified   string              `json:"modified"`
	Active     bool                `json:"active"`
	Complete   bool                `json:"complete"`
	Event      string              `json:"deadline_event,omitempty"`
	Milestones *[]milestonePayload `json:"milestones,omitempty"`
}

func (v view) project(p *models.Project) projectPayload {
	out := projectPayload{
		URI:      projectURI(v.username, p.ID),
		ID:       p.ID,
		Name:     p.Name,
		Desc:     p.Desc,
		Deadline: timez.FormatShort(p.Deadline, v.loc),
		Created:  timez.FormatLong(p.Created, v.loc),
		Modified: timez.FormatLong(p.Modified, v.loc),
		Active:   p.Active,
		Complete: p.Complete,
	}
	if p.DeadlineEventID != "" {
		out.Event = eventURI(v.username, p.DeadlineEventID)
	}
	if p.Milestones != nil {
		ms := v.milestones(p.Milestones)
		out.Milestones = &ms
	}
	return out
}

func (v view) projects(ps []*models.Project) []projectPayload {
	out := make([]projectPayload, 0, len(ps))
	for _, p := range ps {
		out = append(out, v.project(p))
	}
	return out
}

type eventPayload struct {
	URI             string `json:"uri"`
	ID              string `json:"id"`
	Kind            string `json:"kind"`
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end"`
	AllDay          bool   `json:"allDay"`
	Editable        bool   `json:"editable"`
	ClassName       string `json:"className"`
	Color           string `json:"color"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	Desc            string `json:"desc"`
	URL             string `json:"url"`
}

func (v view) event(e *models.Event) eventPayload {
	return eventPayload{
		URI:             eventURI(v.username, e.ID),
		ID:              e.ID,
		Kind:            string(e.Binding.Kind),
		Title:           e.Title,
		Start:           timez.FormatShort(e.Start, v.loc),
		End:             timez.FormatShort(e.End, v.loc),
		AllDay:          e.AllDay,
		Editable:        e.Editable,
		ClassName:       e.ClassName,
		Color:           e.Color,
		TextColor:       e.TextColor,
		BackgroundColor: e.BackgroundColor,
		BorderColor:     e.BorderColor,
		Desc:            e.Desc,
		URL:             e.URL,
	}
}

func (v view) events(events []*models.Event) []eventPayload {
	out := make([]eventPayload, 0, len(events))
	for _, e := range events {
		out = append(out, v.event(e))
	}
	return out
}

type itemPayload struct {
	URI     string `json:"uri"`
	ID      string `json:"id"`
	Value   string `json:"value"`
	Desc    string `json:"desc"`
	Created string `json:"created"`
}

func (v view) item(it *models.Item) itemPayload {
	return itemPayload{
		URI:     itemURI(v.username, it.BookmarkID, it.ID),
		ID:      it.ID,
		Value:   it.Value,
		Desc:    it.Desc,
		Created: timez.FormatLong(it.Created, v.loc),
	}
}

func (v view) items(items []*models.Item) []itemPayload {
	out := make([]itemPayload, 0, len(items))
	for _, it := range items {
		out = append(out, v.item(it))
	}
	return out
}

type bookmarkPayload struct {
	URI     string         `json:"uri"`
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Created string         `json:"created"`
	Items   *[]itemPayload `json:"items,omitempty"`
}

func (v view) bookmark(b *models.Bookmark) bookmarkPayload {
	p := bookmarkPayload{
		URI:     bookmarkURI(v.username, b.ID),
		ID:      b.ID,
		Title:   b.Title,
		Created: timez.FormatLong(b.Created, v.loc),
	}
	if b.Items != nil {
		items := v.items(b.Items)
		p.Items = &items
	}
	return p
}

func (v view) bookmarks(bs []*models.Bookmark) []bookmarkPayload {
	out := make([]bookmarkPayload, 0, len(bs))
	for _, b := range bs {
		out = append(out, v.bookmark(b))
	}
	return out
}

type userIndexPayload struct {
	Username string           `json:"username"`
	Tasks    []taskPayload    `json:"tasks"`
	Projects []projectPayload `json:"projects"`
	Notes    []notePayload    `json:"notes"`
}

func (v view) userIndex(index *services.UserIndex) userIndexPayload {
	return userIndexPayload{
		Username: index.User.Username,
		Tasks:    v.tasks(index.Tasks),
		Projects: v.projects(index.Projects),
		Notes:    v.notes(index.Notes),
	}
}

type tagPayload struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

type tagDetailPayload struct {
	tagPayload
	Tasks []taskPayload `json:"tasks"`
	Notes []notePayload `json:"notes"`
}
