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

package tenant

import (
	"context"
	"sync"

	"github.com/timandy/routine"
)

// 每个在途请求由一个 goroutine 处理，租户槽位按 goroutine 隔离。
// 请求结束（无论成功、失败还是 panic）必须调用 Clear，否则复用同一
// goroutine 的下一个请求会看到上一个请求的租户。

const bucketsSize = 128

type tenantBucket struct {
	lock sync.RWMutex
	data map[uint64]uint64
}

type tenantBuckets struct {
	buckets [bucketsSize]*tenantBucket
}

var goroutineTenant tenantBuckets

func init() {
	for i := range goroutineTenant.buckets {
		goroutineTenant.buckets[i] = &tenantBucket{
			data: make(map[uint64]uint64),
		}
	}
}

func bucketFor(goid uint64) *tenantBucket {
	return goroutineTenant.buckets[goid%bucketsSize]
}

// Set 将当前 goroutine 绑定到租户
func Set(companyId uint64) {
	goid := routine.Goid()
	bucket := bucketFor(goid)
	bucket.lock.Lock()
	defer bucket.lock.Unlock()
	bucket.data[goid] = companyId
}

// Get 返回当前 goroutine 绑定的租户
func Get() (uint64, bool) {
	goid := routine.Goid()
	bucket := bucketFor(goid)
	bucket.lock.RLock()
	companyId, ok := bucket.data[goid]
	bucket.lock.RUnlock()
	return companyId, ok
}

// Clear 解绑当前 goroutine 的租户
func Clear() {
	goid := routine.Goid()
	bucket := bucketFor(goid)
	bucket.lock.Lock()
	defer bucket.lock.Unlock()
	delete(bucket.data, goid)
}

// RunWithTenant 在绑定租户的前提下执行 fn，返回前解绑
func RunWithTenant(companyId uint64, fn func()) {
	Set(companyId)
	defer Clear()
	fn()
}

type contextKey struct{}

// WithTenant 把租户写入 context，供跨 goroutine 的调用链使用
func WithTenant(ctx context.Context, companyId uint64) context.Context {
	return context.WithValue(ctx, contextKey{}, companyId)
}

// FromContext 从 context 读取租户；未设置时回落到 goroutine 槽位
func FromContext(ctx context.Context) (uint64, bool) {
	if ctx != nil {
		if companyId, ok := ctx.Value(contextKey{}).(uint64); ok {
			return companyId, true
		}
	}
	return Get()
}
