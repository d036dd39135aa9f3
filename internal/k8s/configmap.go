package k8s

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ReadConfigMap returns the data of the config map, or nil when it does not
// exist.
func (c *clientSet) ReadConfigMap(ctx context.Context, namespace, name string) (map[string]string, error) {
	configMap, err := c.typed.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config map %s/%s: %w", namespace, name, err)
	}
	return configMap.Data, nil
}
