package service

import (
	"errors"
	"sort"

	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/pkg/http"
	"github.com/go-atrium/atrium/pkg/id"
)

var (
	ErrDepartmentNotEmpty = errors.New(http.DepartmentNotEmpty.Msg)
	ErrDepartmentCycle    = errors.New(http.DepartmentCycleRejected.Msg)
)

// DepartmentService 部门服务
type DepartmentService struct {
	departmentRepo repo.IDepartmentRepository
}

func NewDepartmentService(departmentRepo repo.IDepartmentRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
	}
}

// BuildDepartmentTree 把平铺的部门列表组装为树，规则与菜单树一致
func BuildDepartmentTree(departments []model.Department) []*model.DepartmentNode {
	nodeMap := make(map[uint64]*model.DepartmentNode, len(departments))
	for i := range departments {
		nodeMap[departments[i].ID] = &model.DepartmentNode{Department: departments[i], Children: []*model.DepartmentNode{}}
	}

	var roots []*model.DepartmentNode
	for _, node := range nodeMap {
		if node.ParentId != nil {
			if parent, ok := nodeMap[*node.ParentId]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var sortSiblings func(nodes []*model.DepartmentNode)
	sortSiblings = func(nodes []*model.DepartmentNode) {
		sort.Slice(nodes, func(i, j int) bool {
			if less, decided := sortKeyLess(nodes[i].Sort, nodes[j].Sort); decided {
				return less
			}
			return nodes[i].ID < nodes[j].ID
		})
		for _, node := range nodes {
			sortSiblings(node.Children)
		}
	}
	sortSiblings(roots)

	return roots
}

func (s *DepartmentService) GetDepartmentTree() ([]*model.DepartmentNode, error) {
	departments, err := s.departmentRepo.GetDepartmentList()
	if err != nil {
		return nil, err
	}
	return BuildDepartmentTree(departments), nil
}

func (s *DepartmentService) CreateDepartment(req *model.CreateDepartmentReq, companyId *uint64) (*model.Department, error) {
	if req.ParentId != nil {
		if _, err := s.departmentRepo.GetDepartment(*req.ParentId); err != nil {
			return nil, err
		}
	}

	department := &model.Department{
		Code:      req.Code,
		ParentId:  req.ParentId,
		Name:      req.Name,
		Sort:      req.Sort,
		Status:    model.StatusEnabled,
		CompanyId: companyId,
	}
	if department.Code == "" {
		department.Code = id.ShortId()
	}
	if req.Status != nil {
		department.Status = *req.Status
	}

	if err := s.departmentRepo.AddDepartment(department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *DepartmentService) UpdateDepartment(departmentId uint64, req *model.UpdateDepartmentReq) error {
	if _, err := s.departmentRepo.GetDepartment(departmentId); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.ParentId != nil {
		if *req.ParentId == departmentId {
			return ErrDepartmentCycle
		}
		if _, err := s.departmentRepo.GetDepartment(*req.ParentId); err != nil {
			return err
		}
		departments, err := s.departmentRepo.GetDepartmentList()
		if err != nil {
			return err
		}
		if departmentIsDescendant(departments, departmentId, *req.ParentId) {
			return ErrDepartmentCycle
		}
		updates["parent_id"] = *req.ParentId
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Sort != nil {
		updates["sort"] = *req.Sort
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	return s.departmentRepo.UpdateDepartment(departmentId, updates)
}

// DeleteDepartment 删除部门，仍有子部门或在职用户时拒绝
func (s *DepartmentService) DeleteDepartment(departmentId uint64) error {
	if _, err := s.departmentRepo.GetDepartment(departmentId); err != nil {
		return err
	}

	childCount, err := s.departmentRepo.CountChildren(departmentId)
	if err != nil {
		return err
	}
	userCount, err := s.departmentRepo.CountUsers(departmentId)
	if err != nil {
		return err
	}
	if childCount > 0 || userCount > 0 {
		return ErrDepartmentNotEmpty
	}

	return s.departmentRepo.DeleteDepartment(departmentId)
}

// departmentIsDescendant 判断 candidate 是否在 rootId 的子树内
func departmentIsDescendant(departments []model.Department, rootId, candidate uint64) bool {
	children := make(map[uint64][]uint64, len(departments))
	for _, department := range departments {
		if department.ParentId != nil {
			children[*department.ParentId] = append(children[*department.ParentId], department.ID)
		}
	}

	stack := []uint64{rootId}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, childId := range children[current] {
			if childId == candidate {
				return true
			}
			stack = append(stack, childId)
		}
	}
	return false
}
