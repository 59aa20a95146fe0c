package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/o1-spec/techservices-portal/internal"
)

var _ = ginkgo.Describe("Policy", func() {
	var (
		policy   *Policy
		admin    *Identity
		manager  *Identity
		employee *Identity
	)

	ginkgo.BeforeEach(func() {
		policy = NewPolicy()
		admin = &Identity{ID: 1, Role: RoleAdmin, CompanyID: 1}
		manager = &Identity{ID: 2, Role: RoleManager, CompanyID: 1}
		employee = &Identity{ID: 3, Role: RoleEmployee, CompanyID: 1}
	})

	ginkgo.Describe("Can", func() {
		ginkgo.Context("employees resource", func() {
			ginkgo.It("should be admin-only for every action", func() {
				for _, action := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete} {
					gomega.Expect(policy.Can(RoleAdmin, ResourceEmployees, action)).To(gomega.BeTrue())
					gomega.Expect(policy.Can(RoleManager, ResourceEmployees, action)).To(gomega.BeFalse())
					gomega.Expect(policy.Can(RoleEmployee, ResourceEmployees, action)).To(gomega.BeFalse())
				}
			})
		})

		ginkgo.Context("projects resource", func() {
			ginkgo.It("should allow create and update for admins and managers only", func() {
				for _, action := range []Action{ActionCreate, ActionUpdate} {
					gomega.Expect(policy.Can(RoleAdmin, ResourceProjects, action)).To(gomega.BeTrue())
					gomega.Expect(policy.Can(RoleManager, ResourceProjects, action)).To(gomega.BeTrue())
					gomega.Expect(policy.Can(RoleEmployee, ResourceProjects, action)).To(gomega.BeFalse())
				}
			})

			ginkgo.It("should restrict delete to admins", func() {
				gomega.Expect(policy.Can(RoleAdmin, ResourceProjects, ActionDelete)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleManager, ResourceProjects, ActionDelete)).To(gomega.BeFalse())
				gomega.Expect(policy.Can(RoleEmployee, ResourceProjects, ActionDelete)).To(gomega.BeFalse())
			})

			ginkgo.It("should allow read for everyone", func() {
				gomega.Expect(policy.Can(RoleAdmin, ResourceProjects, ActionRead)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleManager, ResourceProjects, ActionRead)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleEmployee, ResourceProjects, ActionRead)).To(gomega.BeTrue())
			})
		})

		ginkgo.Context("project team resource", func() {
			ginkgo.It("should allow member addition for admins and managers only", func() {
				gomega.Expect(policy.Can(RoleAdmin, ResourceProjectTeam, ActionCreate)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleManager, ResourceProjectTeam, ActionCreate)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleEmployee, ResourceProjectTeam, ActionCreate)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("tasks resource", func() {
			ginkgo.It("should allow create for admins and managers only", func() {
				gomega.Expect(policy.Can(RoleAdmin, ResourceTasks, ActionCreate)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleManager, ResourceTasks, ActionCreate)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleEmployee, ResourceTasks, ActionCreate)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("announcements resource", func() {
			ginkgo.It("should allow read for everyone but writes for admins and managers", func() {
				gomega.Expect(policy.Can(RoleEmployee, ResourceAnnouncements, ActionRead)).To(gomega.BeTrue())

				for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
					gomega.Expect(policy.Can(RoleAdmin, ResourceAnnouncements, action)).To(gomega.BeTrue())
					gomega.Expect(policy.Can(RoleManager, ResourceAnnouncements, action)).To(gomega.BeTrue())
					gomega.Expect(policy.Can(RoleEmployee, ResourceAnnouncements, action)).To(gomega.BeFalse())
				}
			})
		})

		ginkgo.Context("my-team resource", func() {
			ginkgo.It("should be manager-only, excluding admins", func() {
				gomega.Expect(policy.Can(RoleManager, ResourceMyTeam, ActionRead)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleAdmin, ResourceMyTeam, ActionRead)).To(gomega.BeFalse())
				gomega.Expect(policy.Can(RoleEmployee, ResourceMyTeam, ActionRead)).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("users resource", func() {
			ginkgo.It("should allow the picker read for admins and managers only", func() {
				gomega.Expect(policy.Can(RoleAdmin, ResourceUsers, ActionRead)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleManager, ResourceUsers, ActionRead)).To(gomega.BeTrue())
				gomega.Expect(policy.Can(RoleEmployee, ResourceUsers, ActionRead)).To(gomega.BeFalse())
			})

			ginkgo.It("should deny writes for everyone", func() {
				for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
					gomega.Expect(policy.Can(RoleAdmin, ResourceUsers, action)).To(gomega.BeFalse())
				}
			})
		})

		ginkgo.Context("unknown resources and actions", func() {
			ginkgo.It("should deny by default", func() {
				gomega.Expect(policy.Can(RoleAdmin, Resource("reports"), ActionRead)).To(gomega.BeFalse())
				gomega.Expect(policy.Can(RoleAdmin, ResourceMyTeam, ActionDelete)).To(gomega.BeFalse())
			})
		})
	})

	ginkgo.Describe("Authorize", func() {
		ginkgo.It("should pass for a permitted role", func() {
			gomega.Expect(policy.Authorize(admin, ResourceEmployees, ActionCreate)).To(gomega.Succeed())
		})

		ginkgo.It("should return a generic forbidden error on denial", func() {
			err := policy.Authorize(employee, ResourceEmployees, ActionRead)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrForbidden))
		})

		ginkgo.It("should deny a nil identity", func() {
			err := policy.Authorize(nil, ResourceDashboard, ActionRead)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrForbidden))
		})
	})

	ginkgo.Describe("ProjectScopeFor", func() {
		ginkgo.It("should give admins the whole company", func() {
			gomega.Expect(policy.ProjectScopeFor(admin)).To(gomega.Equal(ScopeCompany))
		})

		ginkgo.It("should give managers their assigned projects", func() {
			gomega.Expect(policy.ProjectScopeFor(manager)).To(gomega.Equal(ScopeAssigned))
		})

		ginkgo.It("should give employees projects they have tasks in", func() {
			gomega.Expect(policy.ProjectScopeFor(employee)).To(gomega.Equal(ScopeTasked))
		})
	})

	ginkgo.Describe("CanViewProject", func() {
		ginkgo.It("should let an admin view any project", func() {
			gomega.Expect(policy.CanViewProject(admin, 999)).To(gomega.BeTrue())
		})

		ginkgo.It("should let the assignee view their project", func() {
			gomega.Expect(policy.CanViewProject(manager, manager.ID)).To(gomega.BeTrue())
		})

		ginkgo.It("should deny a non-assignee manager", func() {
			gomega.Expect(policy.CanViewProject(manager, 999)).To(gomega.BeFalse())
		})

		ginkgo.It("should deny a non-assignee employee", func() {
			gomega.Expect(policy.CanViewProject(employee, 999)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("CanUpdateTaskStatus", func() {
		ginkgo.It("should allow the task's assignee", func() {
			gomega.Expect(policy.CanUpdateTaskStatus(employee, employee.ID)).To(gomega.BeTrue())
		})

		ginkgo.It("should allow admins and managers regardless of assignment", func() {
			gomega.Expect(policy.CanUpdateTaskStatus(admin, 999)).To(gomega.BeTrue())
			gomega.Expect(policy.CanUpdateTaskStatus(manager, 999)).To(gomega.BeTrue())
		})

		ginkgo.It("should deny an employee touching someone else's task", func() {
			gomega.Expect(policy.CanUpdateTaskStatus(employee, 999)).To(gomega.BeFalse())
		})
	})
})
