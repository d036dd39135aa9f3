package k8s

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// CreateNamespace creates the namespace. The API error is returned unchanged
// so callers can tell an existing namespace apart from other failures.
func (c *clientSet) CreateNamespace(ctx context.Context, name string) error {
	_, err := c.typed.CoreV1().Namespaces().Create(ctx, &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{Name: name},
	}, metav1.CreateOptions{})
	if err == nil {
		c.log.Info("created namespace", "namespace", name)
	}
	return err
}
