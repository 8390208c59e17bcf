package hrapi

import "sync"

// Cache memoizes the employee roster and active-status list for the
// duration of a single matching run. It is passed by reference into the
// pipeline and dropped with the request; nothing survives across requests.
type Cache struct {
	client *Client

	mu        sync.Mutex
	employees *Employees
	status    map[string]bool
	statusSet bool
}

func NewCache(client *Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Employees() (*Employees, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.employees != nil {
		return c.employees, nil
	}

	employees, err := c.client.ListEmployees()
	if err != nil {
		return nil, err
	}

	c.employees = employees
	return employees, nil
}

func (c *Cache) ActiveStatus() (map[string]bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.statusSet {
		return c.status, nil
	}

	status, err := c.client.ListActiveStatus()
	if err != nil {
		return nil, err
	}

	c.status = status
	c.statusSet = true
	return status, nil
}
