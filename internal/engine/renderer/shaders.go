package renderer

// maxLights is the number of directional lights the mesh shader supports.
const maxLights = 4

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat3 uNormalMatrix;
uniform mat4 uLightSpace;

out vec3 vWorldPos;
out vec3 vNormal;
out float vViewDepth;
out vec4 vLightSpacePos;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vec4 view = uView * world;
    vWorldPos = world.xyz;
    vLightSpacePos = uLightSpace * world;
    vNormal = uNormalMatrix * aNormal;
    vViewDepth = -view.z;
    gl_Position = uProjection * view;
}
`

const meshFragmentShader = `
#version 410 core

#define MAX_LIGHTS 4

in vec3 vWorldPos;
in vec3 vNormal;
in float vViewDepth;
in vec4 vLightSpacePos;

uniform vec3 uColor;
uniform vec3 uEmissive;
uniform float uMetalness;
uniform float uRoughness;
uniform bool uUnlit;

uniform vec3 uCameraPos;
uniform vec3 uAmbient;

uniform int uLightCount;
uniform vec3 uLightDir[MAX_LIGHTS];
uniform vec3 uLightColor[MAX_LIGHTS];

uniform bool uHemiEnabled;
uniform vec3 uHemiSky;
uniform vec3 uHemiGround;

// Shadows darken the light at uShadowLight only.
uniform bool uShadowEnabled;
uniform bool uReceiveShadow;
uniform int uShadowLight;
uniform sampler2DShadow uShadowMap;

uniform bool uFogEnabled;
uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;

out vec4 FragColor;

// 3x3 PCF over the comparison sampler.
float shadowFactor(vec3 n, vec3 l) {
    vec3 p = vLightSpacePos.xyz / vLightSpacePos.w * 0.5 + 0.5;
    if (p.z > 1.0) {
        return 1.0;
    }
    float bias = max(0.002 * (1.0 - dot(n, l)), 0.0005);
    vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * texel, p.z - bias));
        }
    }
    return lit / 9.0;
}

void main() {
    vec3 color = uColor;

    if (!uUnlit) {
        vec3 n = normalize(vNormal);
        if (!gl_FrontFacing) {
            n = -n;
        }
        vec3 v = normalize(uCameraPos - vWorldPos);

        vec3 irradiance = uAmbient;
        if (uHemiEnabled) {
            irradiance += mix(uHemiGround, uHemiSky, n.y * 0.5 + 0.5);
        }

        float shininess = mix(256.0, 4.0, clamp(uRoughness, 0.0, 1.0));
        float specStrength = mix(0.04, 1.0, clamp(uMetalness, 0.0, 1.0));
        vec3 specular = vec3(0.0);

        for (int i = 0; i < uLightCount && i < MAX_LIGHTS; i++) {
            vec3 l = normalize(uLightDir[i]);
            float diffuse = max(dot(n, l), 0.0);
            float visible = 1.0;
            if (uShadowEnabled && uReceiveShadow && i == uShadowLight) {
                visible = shadowFactor(n, l);
            }
            irradiance += uLightColor[i] * diffuse * visible;

            vec3 h = normalize(l + v);
            float spec = pow(max(dot(n, h), 0.0), shininess);
            specular += uLightColor[i] * spec * specStrength * step(0.0, diffuse) * visible;
        }

        color = uColor * irradiance * (1.0 - 0.5 * uMetalness) + specular + uEmissive;
    }

    if (uFogEnabled) {
        float fog = smoothstep(uFogNear, uFogFar, vViewDepth);
        color = mix(color, uFogColor, fog);
    }

    FragColor = vec4(color, 1.0);
}
`

const depthVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uLightSpace;
uniform mat4 uModel;

void main() {
    gl_Position = uLightSpace * uModel * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `
#version 410 core

void main() {
}
`
