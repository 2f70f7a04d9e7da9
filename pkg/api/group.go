package api

type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []Member `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMembersRequest struct {
	GroupID string   `json:"group_id"`
	Members []Member `json:"members"`
}

type AddMembersResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}
