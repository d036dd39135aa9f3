package k8s

import (
	"fmt"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// BuildKubeconfig renders a self-contained kubeconfig for a cluster endpoint
// using bearer token credentials.
func BuildKubeconfig(name, endpoint string, caCert []byte, token string) ([]byte, error) {
	server := endpoint
	if !strings.Contains(server, "://") {
		server = "https://" + server
	}

	cfg := clientcmdapi.NewConfig()
	cfg.Clusters[name] = &clientcmdapi.Cluster{
		Server:                   server,
		CertificateAuthorityData: caCert,
	}
	cfg.AuthInfos[name] = &clientcmdapi.AuthInfo{
		Token: token,
	}
	cfg.Contexts[name] = &clientcmdapi.Context{
		Cluster:  name,
		AuthInfo: name,
	}
	cfg.CurrentContext = name

	raw, err := clientcmd.Write(*cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding kubeconfig for %s: %w", name, err)
	}
	return raw, nil
}
