// Copyright 2025 Atrium Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 注册在默认 registry 上，由 /metrics 统一暴露

var (
	// LoginTotal counts login attempts, labelled by result: success / failure.
	LoginTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "atrium",
		Subsystem: "auth",
		Name:      "login_total",
		Help:      "Total number of login attempts.",
	}, []string{"result"})

	// TokenRefreshTotal counts refresh token exchanges, labelled by result.
	TokenRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "atrium",
		Subsystem: "auth",
		Name:      "token_refresh_total",
		Help:      "Total number of refresh token exchanges.",
	}, []string{"result"})

	// PermissionDeniedTotal counts requests rejected by the permission guard.
	PermissionDeniedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "atrium",
		Subsystem: "authz",
		Name:      "permission_denied_total",
		Help:      "Total number of requests rejected for missing authorities.",
	})

	// TenantUnresolvedTotal counts requests rejected because no tenant could be resolved.
	TenantUnresolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "atrium",
		Subsystem: "tenant",
		Name:      "unresolved_total",
		Help:      "Total number of requests rejected with an unresolvable tenant.",
	})
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)
