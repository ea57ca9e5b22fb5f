package client

import "sync"

// cache is a normalized, id-keyed snapshot of objects the client has
// seen. Refetching a list replaces the cached list wholesale, so stale
// entries do not survive a refresh. Reads are safe from any goroutine.
type cache struct {
	mu            sync.RWMutex
	teams         map[string]Team
	projects      map[string]Project
	tasks         map[string]Task
	taskIDsByProj map[string][]string
	projectOfTask map[string]string
}

func newCache() *cache {
	return &cache{
		teams:         make(map[string]Team),
		projects:      make(map[string]Project),
		tasks:         make(map[string]Task),
		taskIDsByProj: make(map[string][]string),
		projectOfTask: make(map[string]string),
	}
}

// CachedTeam returns the last-seen copy of a team, if any.
func (c *Client) CachedTeam(id string) (Team, bool) {
	c.cache.mu.RLock()
	defer c.cache.mu.RUnlock()
	tm, ok := c.cache.teams[id]
	return tm, ok
}

// CachedProject returns the last-seen copy of a project, if any.
func (c *Client) CachedProject(id string) (Project, bool) {
	c.cache.mu.RLock()
	defer c.cache.mu.RUnlock()
	p, ok := c.cache.projects[id]
	return p, ok
}

// CachedTask returns the last-seen copy of a task, if any.
func (c *Client) CachedTask(id string) (Task, bool) {
	c.cache.mu.RLock()
	defer c.cache.mu.RUnlock()
	t, ok := c.cache.tasks[id]
	return t, ok
}

// CachedTasks returns the last-fetched task list for a project in its
// server ordering. The second return is false if the project's tasks
// have never been listed.
func (c *Client) CachedTasks(projectID string) ([]Task, bool) {
	c.cache.mu.RLock()
	defer c.cache.mu.RUnlock()
	ids, ok := c.cache.taskIDsByProj[projectID]
	if !ok {
		return nil, false
	}
	out := make([]Task, 0, len(ids))
	for _, id := range ids {
		if t, ok := c.cache.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, true
}

func (c *Client) cacheTeam(tm Team) {
	c.cache.mu.Lock()
	c.cache.teams[tm.ID] = tm
	c.cache.mu.Unlock()
}

func (c *Client) cacheTeams(teams []Team) {
	c.cache.mu.Lock()
	c.cache.teams = make(map[string]Team, len(teams))
	for _, tm := range teams {
		c.cache.teams[tm.ID] = tm
	}
	c.cache.mu.Unlock()
}

func (c *Client) cacheProject(p Project) {
	c.cache.mu.Lock()
	c.cache.projects[p.ID] = p
	c.indexTasksLocked(p.ID, p.Tasks)
	c.cache.mu.Unlock()
}

func (c *Client) cacheProjects(projects []Project) {
	c.cache.mu.Lock()
	c.cache.projects = make(map[string]Project, len(projects))
	for _, p := range projects {
		c.cache.projects[p.ID] = p
		c.indexTasksLocked(p.ID, p.Tasks)
	}
	c.cache.mu.Unlock()
}

func (c *Client) cacheTasks(projectID string, tasks []Task) {
	c.cache.mu.Lock()
	c.indexTasksLocked(projectID, tasks)
	c.cache.mu.Unlock()
}

// indexTasksLocked replaces the project's task list and upserts each
// task by id. Caller holds the write lock.
func (c *Client) indexTasksLocked(projectID string, tasks []Task) {
	for _, old := range c.cache.taskIDsByProj[projectID] {
		delete(c.cache.tasks, old)
		delete(c.cache.projectOfTask, old)
	}
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		c.cache.tasks[t.ID] = t
		c.cache.projectOfTask[t.ID] = projectID
		ids = append(ids, t.ID)
	}
	c.cache.taskIDsByProj[projectID] = ids
}

func (c *Client) cacheTask(t Task) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	if _, seen := c.cache.tasks[t.ID]; !seen {
		pid := t.Project.ID
		c.cache.taskIDsByProj[pid] = append(c.cache.taskIDsByProj[pid], t.ID)
		c.cache.projectOfTask[t.ID] = pid
	}
	c.cache.tasks[t.ID] = t
}

func (c *Client) evictTask(id string) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	pid, ok := c.cache.projectOfTask[id]
	if ok {
		ids := c.cache.taskIDsByProj[pid]
		for i, tid := range ids {
			if tid == id {
				c.cache.taskIDsByProj[pid] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
	delete(c.cache.tasks, id)
	delete(c.cache.projectOfTask, id)
}

func (c *Client) evictProject(id string) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	for _, tid := range c.cache.taskIDsByProj[id] {
		delete(c.cache.tasks, tid)
		delete(c.cache.projectOfTask, tid)
	}
	delete(c.cache.taskIDsByProj, id)
	delete(c.cache.projects, id)
}
