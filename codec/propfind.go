package codec

import "sort"

// EncodePropfind 生成PROPFIND请求体, names为空表示allprop
func EncodePropfind(names []string) []byte {
	w := newBodyWriter()
	w.Open("D:propfind", davNSAttr)
	if len(names) == 0 {
		w.Empty("D:allprop")
	} else {
		w.Open("D:prop")
		for _, name := range names {
			w.Empty("D:" + name)
		}
		w.Close("D:prop")
	}
	w.Close("D:propfind")
	return w.Bytes()
}

// EncodePropname 生成只枚举属性名不取值的PROPFIND请求体
func EncodePropname() []byte {
	w := newBodyWriter()
	w.Open("D:propfind", davNSAttr)
	w.Empty("D:propname")
	w.Close("D:propfind")
	return w.Bytes()
}

// EncodeProppatch 生成PROPPATCH请求体.
// set块带值, remove块只列属性名; 移除不存在的属性不是编码期错误, 由服务端裁决.
func EncodeProppatch(set map[string]string, remove []string) []byte {
	w := newBodyWriter()
	w.Open("D:propertyupdate", davNSAttr)
	if len(set) > 0 {
		w.Open("D:set").Open("D:prop")
		for _, name := range sortedKeys(set) {
			w.Elem("D:"+name, set[name])
		}
		w.Close("D:prop").Close("D:set")
	}
	if len(remove) > 0 {
		w.Open("D:remove").Open("D:prop")
		for _, name := range remove {
			w.Empty("D:" + name)
		}
		w.Close("D:prop").Close("D:remove")
	}
	w.Close("D:propertyupdate")
	return w.Bytes()
}

func sortedKeys(m map[string]string) []string {
	rs := make([]string, 0, len(m))
	for k := range m {
		rs = append(rs, k)
	}
	// map遍历顺序随机, 排一下保证请求体可复现, 方便测试和抓包比对
	sort.Strings(rs)
	return rs
}
