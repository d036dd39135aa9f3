package gcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/iam/apiv1/iampb"
	resourcemanagerpb "cloud.google.com/go/resourcemanager/apiv3/resourcemanagerpb"
)

// BuildServiceAccountMember returns the IAM member string of the Cloud Build
// service identity of a project.
func BuildServiceAccountMember(projectNumber int64) string {
	return fmt.Sprintf("serviceAccount:%d@cloudbuild.gserviceaccount.com", projectNumber)
}

// ProjectNumber resolves the numeric identifier of the project.
func (c *RealClient) ProjectNumber(ctx context.Context, projectID string) (int64, error) {
	project, err := c.projects.GetProject(ctx, &resourcemanagerpb.GetProjectRequest{
		Name: "projects/" + projectID,
	})
	if err != nil {
		if IsNotFound(err) {
			return 0, fmt.Errorf("project %q not found: %w", projectID, err)
		}
		return 0, fmt.Errorf("getting project %s: %w", projectID, err)
	}
	// The resource name of a project is projects/<number>.
	number, err := strconv.ParseInt(strings.TrimPrefix(project.GetName(), "projects/"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing project number from %q: %w", project.GetName(), err)
	}
	return number, nil
}

// EnsureRoleBinding grants the role to the member on the project IAM policy
// using a read-modify-write cycle.
func (c *RealClient) EnsureRoleBinding(ctx context.Context, projectID, member, role string) error {
	resource := "projects/" + projectID
	policy, err := c.projects.GetIamPolicy(ctx, &iampb.GetIamPolicyRequest{Resource: resource})
	if err != nil {
		return fmt.Errorf("reading IAM policy of %s: %w", projectID, err)
	}
	if !addBinding(policy, member, role) {
		c.log.Info("role binding already present", "member", member, "role", role)
		return nil
	}
	c.log.Info("granting role", "member", member, "role", role, "project", projectID)
	if _, err := c.projects.SetIamPolicy(ctx, &iampb.SetIamPolicyRequest{
		Resource: resource,
		Policy:   policy,
	}); err != nil {
		return fmt.Errorf("granting %s to %s on %s: %w", role, member, projectID, err)
	}
	return nil
}

// addBinding adds member to the role binding of the policy. It reports false
// when the member already holds the role.
func addBinding(policy *iampb.Policy, member, role string) bool {
	for _, binding := range policy.GetBindings() {
		if binding.GetRole() != role {
			continue
		}
		for _, m := range binding.GetMembers() {
			if m == member {
				return false
			}
		}
		binding.Members = append(binding.Members, member)
		return true
	}
	policy.Bindings = append(policy.Bindings, &iampb.Binding{
		Role:    role,
		Members: []string{member},
	})
	return true
}
